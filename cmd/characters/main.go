// Command characters talks to the characters REST API.
//
//	characters [-url http://localhost:8000] list
//	characters get <id>
//	characters delete <id>
//	characters create -name Bender -occupation Robot -cartoon -weapon Arm
//	characters update <id> -name Bender -occupation Chef
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hilthontt/roomly/internal/infrastructure/env"
	"github.com/hilthontt/roomly/pkg/characters"
)

func main() {
	baseURL := flag.String("url", env.GetString("CHARACTERS_API_URL", "http://localhost:8000"), "characters API base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	client := characters.NewClient(*baseURL, characters.WithTimeout(*timeout))
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, client, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, characters.ErrNotFound) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, client *characters.Client, cmd string, args []string) error {
	switch cmd {
	case "list":
		list, err := client.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(list)

	case "get":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		c, err := client.Get(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(c)

	case "delete":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return client.Delete(ctx, id)

	case "create":
		in, err := parseInput("create", args)
		if err != nil {
			return err
		}
		c, err := client.Create(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(c)

	case "update":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		in, err := parseInput("update", args[1:])
		if err != nil {
			return err
		}
		c, err := client.Update(ctx, id, in)
		if err != nil {
			return err
		}
		return printJSON(c)
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func parseID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("missing character id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid character id %q", args[0])
	}
	return id, nil
}

func parseInput(name string, args []string) (characters.CharacterInput, error) {
	var in characters.CharacterInput

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&in.Name, "name", "", "character name")
	fs.StringVar(&in.Occupation, "occupation", "", "occupation")
	fs.BoolVar(&in.Cartoon, "cartoon", false, "is a cartoon")
	fs.StringVar(&in.Weapon, "weapon", "", "weapon")

	if err := fs.Parse(args); err != nil {
		return in, err
	}
	if in.Name == "" {
		return in, errors.New("-name is required")
	}

	return in, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: characters [flags] <command> [args]

commands:
  list
  get <id>
  delete <id>
  create -name N [-occupation O] [-cartoon] [-weapon W]
  update <id> -name N [-occupation O] [-cartoon] [-weapon W]

flags:
`)
	flag.PrintDefaults()
}
