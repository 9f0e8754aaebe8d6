package embedded

import (
	_ "embed"
)

// Embed prompt data files
//
//go:embed data/system_prompt.txt
var SystemPromptTxt []byte

//go:embed data/output_format_instructions.txt
var OutputFormatInstructionsTxt []byte
