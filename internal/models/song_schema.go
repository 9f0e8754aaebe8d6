package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const songSchemaURL = "jukebox://schemas/generated-song.json"

// SongSchema is the output contract every GeneratedSong must satisfy.
// A real song always names its provider and carries no error.
const SongSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title", "artist", "genre", "bpm", "mood", "coverDescription", "colorScheme", "provenance"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "artist": {"type": "string", "minLength": 1},
    "genre": {"type": "string", "minLength": 1},
    "bpm": {"type": "integer", "minimum": 60, "maximum": 180},
    "mood": {"type": "string", "minLength": 1},
    "coverDescription": {"type": "string", "minLength": 1},
    "colorScheme": {"enum": ["purple-blue", "pink-orange", "green-teal", "blue-cyan", "red-black", "yellow-orange"]},
    "provenance": {
      "type": "object",
      "required": ["isReal", "providerId", "generatedAt", "promptUsed", "error"],
      "properties": {
        "isReal": {"type": "boolean"},
        "providerId": {"type": ["string", "null"]},
        "generatedAt": {"type": "string", "minLength": 1},
        "promptUsed": {"type": "string", "minLength": 1},
        "error": {"type": ["string", "null"]}
      },
      "if": {"properties": {"isReal": {"const": true}}},
      "then": {"properties": {"providerId": {"type": "string"}, "error": {"type": "null"}}},
      "else": {"properties": {"providerId": {"type": "null"}, "error": {"type": "string", "minLength": 1}}}
    }
  }
}`

var (
	songSchemaOnce sync.Once
	songSchema     *jsonschema.Schema
	songSchemaErr  error
)

func compiledSongSchema() (*jsonschema.Schema, error) {
	songSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(songSchemaURL, strings.NewReader(SongSchema)); err != nil {
			songSchemaErr = fmt.Errorf("add song schema: %w", err)
			return
		}
		songSchema, songSchemaErr = compiler.Compile(songSchemaURL)
	})
	return songSchema, songSchemaErr
}

// ValidateSong checks a song against SongSchema
func ValidateSong(song GeneratedSong) error {
	schema, err := compiledSongSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(song)
	if err != nil {
		return fmt.Errorf("marshal song: %w", err)
	}
	var payload interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("decode song: %w", err)
	}
	return schema.Validate(payload)
}
