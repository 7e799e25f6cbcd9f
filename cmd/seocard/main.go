// seocard — Social-share preview card generation.
//
// Usage:
//
//	seocard render -o <file> [--data <json>] [field flags] [--config <path>]
//	seocard serve [--config <path>] [--listen <addr>]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kcole93/seo-card-generator/clients/server"
	"github.com/kcole93/seo-card-generator/pkg/card"
	"github.com/kcole93/seo-card-generator/pkg/config"
	"github.com/kcole93/seo-card-generator/pkg/encode"
	"github.com/kcole93/seo-card-generator/pkg/fontcache"
	"github.com/kcole93/seo-card-generator/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "render":
		if err := runRender(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		printUsage()
		fatal(fmt.Errorf("unknown command %q", os.Args[1]))
	}
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)

	var (
		output     string
		dataPath   string
		configPath string
		dir        string
		req        card.RenderRequest
	)

	fs.StringVar(&output, "o", "card.png", "Output file (.png or .bmp)")
	fs.StringVar(&output, "output", "card.png", "Output file (.png or .bmp)")
	fs.StringVar(&dataPath, "data", "", "Path to a JSON render request (overrides field flags)")
	fs.StringVar(&configPath, "config", "", "Path to config TOML")
	fs.StringVar(&req.TitleBar, "title-bar", "", "Banner strip text")
	fs.StringVar(&req.TitleText, "title", "", "Headline text")
	fs.StringVar(&req.BgColor, "bg", "#102030", "Background color (#rrggbb)")
	fs.StringVar(&req.IconURL, "icon", "", "Icon image URL")
	fs.StringVar(&req.FontFamily, "font", "Roboto", "Font family name")
	fs.StringVar(&dir, "dir", "LTR", `Text direction: "LTR" or "RTL"`)
	fs.StringVar(&req.Language, "lang", "", "Language tag for banner sizing (e.g. tr-TR)")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.TextDir = card.TextDir(dir)

	if dataPath != "" {
		raw, err := os.ReadFile(dataPath)
		if err != nil {
			return fmt.Errorf("read request: %w", err)
		}
		req = card.RenderRequest{}
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("parse request: %w", err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, closer := logger.New(logger.ParseLevel(cfg.Log.Level), cfg.Log.File, cfg.Log.MaxSizeMB)
	defer closer.Close()

	renderer := buildRenderer(cfg, log)
	img, err := renderer.RenderImage(context.Background(), &req)
	if err != nil {
		return err
	}

	if err := encode.WriteFile(output, img); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", output)
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	var configPath, listen string
	fs.StringVar(&configPath, "config", "", "Path to config TOML")
	fs.StringVar(&listen, "listen", "", "Listen address (overrides config)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Server.Listen = listen
	}

	log, closer := logger.New(logger.ParseLevel(cfg.Log.Level), cfg.Log.File, cfg.Log.MaxSizeMB)
	defer closer.Close()

	renderer := buildRenderer(cfg, log)
	srv := server.New(renderer, cfg.Server.AuthToken, log)
	return srv.ListenAndServe(cfg.Server.Listen)
}

// buildRenderer wires the shared HTTP client, the font provider and the
// renderer from config.
func buildRenderer(cfg config.Config, log *slog.Logger) *card.Renderer {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.HTTP.RetryMax
	client.HTTPClient.Timeout = cfg.HTTPTimeout()
	client.Logger = nil

	fonts := fontcache.NewProvider(fontcache.Options{
		Endpoint: cfg.Fonts.Endpoint,
		TTL:      cfg.FontTTL(),
		Client:   client,
	})

	return card.NewRenderer(fonts, client, log)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`seocard — Social-share preview card generation

USAGE:
    seocard render -o <file> [options]
    seocard serve [--config <path>] [--listen <addr>]

RENDER:
    -o, --output <path>    Output file (.png or .bmp, default: card.png)
    --data <path>          JSON render request (overrides field flags)
    --title-bar <text>     Banner strip text
    --title <text>         Headline text
    --bg <hex>             Background color (default: #102030)
    --icon <url>           Icon image URL
    --font <family>        Font family name (default: Roboto)
    --dir <LTR|RTL>        Text direction (default: LTR)
    --lang <tag>           Language tag for banner sizing
    --config <path>        Config TOML

SERVE:
    --config <path>        Config TOML
    --listen <addr>        Listen address (overrides config)

EXAMPLES:
    seocard render -o card.png --title-bar "Breaking News" --title "City Opens New Park" --icon https://example.com/icon.png
    seocard render -o card.png --data request.json
    seocard serve --listen :8080
`)
}
