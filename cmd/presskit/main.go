package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/eringen/presskit"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		if err := runBuild(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: presskit new <project-name>")
			os.Exit(1)
		}
		if err := runNew(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("presskit %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := fs.String("config", "site.yaml", "path to the site configuration file")
	noCache := fs.Bool("no-cache", false, "render every page instead of reusing the render cache")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := presskit.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	b := presskit.NewBuilder(cfg)
	if !*noCache {
		cache, err := presskit.OpenRenderCache(cfg.CachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: render cache unavailable: %v\n", err)
		} else {
			b.Cache = cache
			defer cache.Close()
		}
	}

	res, err := b.Build(context.Background())
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	fmt.Printf("Built %d pages (%d routes, %d cache hits) in %s\n",
		res.Pages, len(res.Routes), res.CacheHits, res.Duration.Round(time.Millisecond))
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "site.yaml", "path to the site configuration file")
	watch := fs.Bool("watch", false, "rebuild when content files change")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := presskit.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	var opts []presskit.Option
	if *watch {
		opts = append(opts, presskit.WithWatch())
	}

	app := presskit.New(cfg, opts...)
	defer app.Close()
	return app.Start()
}

func printUsage() {
	fmt.Println(`presskit - A static blog generator built with Go, Echo, and templ

Usage:
  presskit <command> [arguments]

Commands:
  build         Render the site into the output directory
  serve         Build, then serve the site with on-demand rendering
  new <name>    Create a new presskit project
  version       Print the presskit version
  help          Show this help message

Examples:
  presskit build --config site.yaml
  presskit serve --watch
  presskit new myblog
  presskit new github.com/user/myblog`)
}
