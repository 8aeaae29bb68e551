package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chzyer/readline"

	"github.com/microsql/microsql/server/microwire"
)

// ---- TCP client (sync) ----

type Client struct {
	conn net.Conn
	mu   sync.Mutex
	id   atomic.Uint64
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) Exec(line string) (*microwire.ExecuteResponse, error) {
	reqID := c.id.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	req := microwire.ExecuteRequest{ID: reqID, SQL: line}
	if err := microwire.WriteFrame(c.conn, req); err != nil {
		return nil, err
	}

	var resp microwire.ExecuteResponse
	if err := microwire.ReadFrame(c.conn, &resp); err != nil {
		return nil, err
	}
	if resp.ID != reqID {
		return nil, fmt.Errorf("response id mismatch: got=%d want=%d", resp.ID, reqID)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return &resp, nil
}

// ---- output ----

func printResponse(resp *microwire.ExecuteResponse) {
	if len(resp.Columns) == 0 {
		fmt.Printf("OK (%d affected)\n", resp.Affected)
		return
	}

	widths := make([]int, len(resp.Columns))
	for i, c := range resp.Columns {
		widths[i] = len(c)
	}
	cell := func(row []any, i int) string {
		if i >= len(row) || row[i] == nil {
			return "NULL"
		}
		return fmt.Sprintf("%v", row[i])
	}
	for _, row := range resp.Rows {
		for i := range resp.Columns {
			if n := len(cell(row, i)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	printRow := func(values []string) {
		for i := range resp.Columns {
			if i > 0 {
				fmt.Print(" | ")
			}
			fmt.Print(padRight(values[i], widths[i]))
		}
		fmt.Println()
	}

	printRow(resp.Columns)
	for i := range resp.Columns {
		if i > 0 {
			fmt.Print("-+-")
		}
		fmt.Print(strings.Repeat("-", widths[i]))
	}
	fmt.Println()

	for _, row := range resp.Rows {
		out := make([]string, len(resp.Columns))
		for i := range resp.Columns {
			out[i] = cell(row, i)
		}
		printRow(out)
	}
	fmt.Printf("(%d rows)\n", len(resp.Rows))
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".microsql_history"
	}
	return filepath.Join(home, ".microsql_history")
}

const helpText = `meta commands:
  .tables            list tables
  .schema <table>    show a table's columns
  .help              show help
  .exit              quit

sql:
  CREATE TABLE / INSERT / SELECT / UPDATE / DELETE, one statement per line`

func main() {
	var (
		addr       = flag.String("addr", "127.0.0.1:8866", "server address")
		timeout    = flag.Duration("timeout", 3*time.Second, "dial timeout")
		histPath   = flag.String("history", defaultHistoryPath(), "history file path")
		oneShotSQL = flag.String("c", "", "execute one statement and exit")
	)
	flag.Parse()

	cli, err := Dial(*addr, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cli.Close() }()

	if strings.TrimSpace(*oneShotSQL) != "" {
		resp, err := cli.Exec(*oneShotSQL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		printResponse(resp)
		return
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "microsql> ",
		HistoryFile:     *histPath,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	fmt.Printf("connected to %s\n", *addr)
	fmt.Println("type .help for help")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println("^C")
			continue
		}
		if err != nil {
			// EOF
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case ".exit", ".quit":
			return
		case ".help":
			fmt.Println(helpText)
			continue
		}

		// .tables and .schema go to the server like any statement
		resp, err := cli.Exec(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		printResponse(resp)
	}
}
