// Command jukebox drives the generation and prioritization pipeline from a terminal
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Conceptual-Machines/jukebox-api/internal/api"
	"github.com/Conceptual-Machines/jukebox-api/internal/config"
	"github.com/Conceptual-Machines/jukebox-api/internal/models"
	"github.com/Conceptual-Machines/jukebox-api/internal/services"
)

const (
	exitSuccess     = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// cli holds state shared by every subcommand
type cli struct {
	opts    outputOptions
	out     *output
	cfg     *config.Config
	runtime *services.Runtime
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	switch {
	case err == nil:
		os.Exit(exitSuccess)
	case ctx.Err() != nil:
		fmt.Fprintln(os.Stderr, "Interrupted (Ctrl-C)")
		os.Exit(exitInterrupted)
	default:
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, ue.msg)
			os.Exit(exitUsage)
		}
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(exitFailure)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "jukebox",
		Short:         "Generate songs and prioritize them in the jukebox playlist",
		Version:       releaseVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.runtime != nil {
				c.runtime.Tracer.Flush()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	addOutputFlags(root.PersistentFlags(), &c.opts)

	root.AddCommand(
		c.generateCmd(),
		c.prioritizeCmd(),
		c.statusCmd(),
		c.playlistCmd(),
		c.serveCmd(),
	)
	return root
}

func addOutputFlags(fs *pflag.FlagSet, opts *outputOptions) {
	fs.BoolVar(&opts.JSON, "json", false, "Print machine-readable JSON")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "Show pipeline logs on stderr")
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
}

func (c *cli) setup(ctx context.Context) error {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		c.opts.NoColor = true
	}
	c.out = newOutput(c.stdout, c.stderr, c.opts)

	// Pipeline logs go through the standard logger; keep them off the terminal by default
	if c.opts.Verbose {
		log.SetOutput(c.stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := godotenv.Load(); err != nil {
		c.out.Debug("No .env file found, using environment variables")
	}
	c.cfg = config.Load()

	runtime, err := services.NewRuntime(ctx, c.cfg)
	if err != nil {
		return err
	}
	c.runtime = runtime
	return nil
}

func (c *cli) generateCmd() *cobra.Command {
	var showAttempts bool
	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate song metadata from a prompt",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			result := c.runtime.Jukebox.GenerateDetailed(cmd.Context(), prompt)
			if c.opts.JSON {
				if showAttempts {
					return c.out.EmitJSON(result)
				}
				return c.out.EmitJSON(result.Song)
			}

			c.printSong(result.Song)
			if showAttempts {
				for _, a := range result.Attempts {
					status := c.out.Green("ok")
					if !a.Success {
						status = c.out.Red(a.Kind)
					}
					c.out.Printf("  %s %s (%s) %s", c.out.Gray("attempt"), a.ProviderID, a.Duration.Round(time.Millisecond), status)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showAttempts, "attempts", false, "Show every provider attempt")
	return cmd
}

func (c *cli) printSong(song models.GeneratedSong) {
	c.out.Print(c.out.Bold(fmt.Sprintf("%s by %s", song.Title, song.Artist)))
	c.out.Printf("  %s, %d BPM, %s", song.Genre, song.BPM, song.Mood)
	c.out.Printf("  %s", c.out.Gray(song.CoverDescription))
	c.out.Printf("  palette: %s", song.ColorScheme)
	if song.Provenance.IsReal {
		c.out.Success(fmt.Sprintf("  generated by %s", *song.Provenance.ProviderID))
		return
	}
	c.out.Warn(fmt.Sprintf("  fallback song (%s)", *song.Provenance.Error))
}

func (c *cli) prioritizeCmd() *cobra.Command {
	var title, artist, amount string
	cmd := &cobra.Command{
		Use:   "prioritize",
		Short: "Pay to move a song to the top of the playlist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(title) == "" {
				return usageError{msg: "prioritize requires --title"}
			}
			rec := c.runtime.Jukebox.Prioritize(cmd.Context(), models.SongRef{Title: title, Artist: artist}, amount)
			if c.opts.JSON {
				return c.out.EmitJSON(rec)
			}

			c.out.Success(fmt.Sprintf("%s by %s is now #%d (boosts: %d)", rec.SongTitle, rec.Artist, rec.Position, rec.Boosts))
			c.out.Printf("  %s %s on %s", rec.AmountRequested, rec.Currency, rec.Network)
			c.out.Printf("  tx %s", c.out.Gray(rec.TransactionID))
			if rec.IsSimulated {
				c.out.Warn("  simulated payment")
			}
			if rec.Note != "" {
				c.out.Printf("  %s", c.out.Gray(rec.Note))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Song title")
	cmd.Flags().StringVarP(&artist, "artist", "a", "", "Song artist")
	cmd.Flags().StringVar(&amount, "amount", "", "USDC amount (defaults to PAYMENT_DEFAULT_AMOUNT)")
	return cmd
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which integrations are configured",
		RunE: func(*cobra.Command, []string) error {
			status := c.runtime.Jukebox.CheckConfiguration()
			chain := c.runtime.Jukebox.Models()
			if c.opts.JSON {
				return c.out.EmitJSON(map[string]any{
					"generationReady": status.GenerationReady,
					"paymentReady":    status.PaymentReady,
					"models":          chain,
				})
			}

			c.out.Printf("%s %s", c.out.Bold("Generation:"), c.readiness(status.GenerationReady))
			c.out.Printf("  models: %s", strings.Join(chain, ", "))
			c.out.Printf("%s %s", c.out.Bold("Payments:  "), c.readiness(status.PaymentReady))
			return nil
		},
	}
}

func (c *cli) readiness(ok bool) string {
	if ok {
		return c.out.Green("ready")
	}
	return c.out.Yellow("fallback only")
}

func (c *cli) playlistCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "List prioritized songs, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reset {
				if err := c.runtime.Jukebox.ResetPlaylist(cmd.Context()); err != nil {
					return err
				}
				c.out.Success("Playlist cleared")
				return nil
			}

			entries, err := c.runtime.Jukebox.Playlist(cmd.Context())
			if err != nil {
				return err
			}
			if c.opts.JSON {
				if entries == nil {
					entries = []models.PlaylistEntry{}
				}
				return c.out.EmitJSON(entries)
			}
			if len(entries) == 0 {
				c.out.Print(c.out.Gray("Playlist is empty"))
				return nil
			}
			for i, e := range entries {
				c.out.Printf("%2d. %s by %s %s", i+1, c.out.Bold(e.Title), e.Artist, c.out.Gray(fmt.Sprintf("x%d", e.Boosts)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Empty the playlist")
	return cmd
}

func (c *cli) serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(*cobra.Command, []string) error {
			if port == "" {
				port = c.cfg.Port
			}
			if c.cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			router := api.SetupRouter(c.runtime.Jukebox, c.cfg, c.runtime.Recorder, releaseVersion)
			c.out.Success(fmt.Sprintf("Serving on :%s", port))
			return router.Run(":" + port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (defaults to PORT)")
	return cmd
}
