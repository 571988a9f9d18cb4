// Command webcli is the interactive text browser. It turns pages into
// numbered menus and accepts short commands against those numbers.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"webcli/internal/application/port/input"
	"webcli/internal/di"
	"webcli/internal/infrastructure/console"
)

const banner = `webcli - text browser
Type 'help' for commands, 'quit' to exit.`

const helpText = `Commands:
  goto <url>            open a page
  search <query>        search the web (WEBCLI_SEARCH_ENGINE: brave, ddg, searx)
  click <id>            click element, e.g. click L3
  fill <id> <text>      type into input, e.g. fill I1 hello world
  select <id> <option>  pick dropdown option, e.g. select S1 English
  scroll up|down        scroll and refresh the menu
  back                  go to the previous page
  read [n]              extract readable page text (optionally capped at n chars)
  state                 dump page state as JSON
  menu                  re-print the current menu
  compact               print the minimal menu view
  help                  this text
  quit                  exit`

func main() {
	ctx := context.Background()

	container, err := di.NewContainer(ctx, di.Options{SessionName: "cli"})
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer container.Close()

	present := console.NewPresenter(os.Stdout)
	fmt.Println(banner)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		present.Prompt()
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		out, menu, err := dispatch(ctx, container.Commander, line)
		if err != nil {
			present.ShowError(err)
			continue
		}
		if menu {
			present.ShowMenu(out)
		} else if out != "" {
			present.ShowText(out)
		}
	}
}

// dispatch parses one input line. The menu flag marks output that is a
// rendered element menu rather than plain text.
func dispatch(ctx context.Context, c input.Commander, line string) (out string, menu bool, err error) {
	parts := strings.SplitN(line, " ", 3)
	cmd := strings.ToLower(parts[0])

	arg := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	rest := func(i int) string {
		return strings.TrimSpace(strings.Join(parts[i:], " "))
	}

	switch cmd {
	case "goto", "open":
		if arg(1) == "" {
			return "", false, fmt.Errorf("usage: goto <url>")
		}
		out, err = c.Goto(ctx, rest(1))
		return out, true, err

	case "search":
		if arg(1) == "" {
			return "", false, fmt.Errorf("usage: search <query>")
		}
		out, err = c.Search(ctx, rest(1), "")
		return out, true, err

	case "click":
		if arg(1) == "" {
			return "", false, fmt.Errorf("usage: click <id>")
		}
		out, err = c.Click(ctx, arg(1))
		return out, true, err

	case "fill":
		if arg(1) == "" {
			return "", false, fmt.Errorf("usage: fill <id> <text>")
		}
		out, err = c.Fill(ctx, arg(1), strings.Trim(rest(2), `"`))
		return out, true, err

	case "select":
		if arg(1) == "" || arg(2) == "" {
			return "", false, fmt.Errorf("usage: select <id> <option>")
		}
		out, err = c.SelectOption(ctx, arg(1), strings.Trim(rest(2), `"`))
		return out, true, err

	case "scroll":
		dir := arg(1)
		if dir == "" {
			dir = "down"
		}
		out, err = c.Scroll(ctx, dir)
		return out, true, err

	case "back":
		out, err = c.Back(ctx)
		return out, true, err

	case "read":
		maxLen := 0
		if arg(1) != "" {
			n, convErr := strconv.Atoi(arg(1))
			if convErr != nil {
				return "", false, fmt.Errorf("usage: read [max chars]")
			}
			maxLen = n
		}
		out, err = c.Read(ctx, maxLen)
		return out, false, err

	case "state":
		out, err = c.State()
		return out, false, err

	case "menu", "refresh":
		return c.Render(), true, nil

	case "compact":
		return c.Compact(), false, nil

	case "help":
		return helpText, false, nil

	default:
		return "", false, fmt.Errorf("unknown command: %s (try 'help')", cmd)
	}
}
