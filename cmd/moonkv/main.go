package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/eternalApril/moonkv"
	"github.com/eternalApril/moonkv/internal/config"
	"github.com/eternalApril/moonkv/internal/logger"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync() //nolint:errcheck

	log.Info("moonkv starting")

	db := moonkv.New(moonkv.WithLogger(log))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(cfg.REPL.Prompt)
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		name := strings.ToUpper(fields[0])
		if name == "QUIT" || name == "EXIT" {
			break
		}

		args := make([]any, len(fields)-1)
		for i, f := range fields[1:] {
			args[i] = f
		}

		reply, err := db.Do(name, args...)
		if err != nil {
			fmt.Println("(error)", err)
			continue
		}
		printReply(reply)
	}

	if err := scanner.Err(); err != nil {
		log.Error("stdin read failed", zap.Error(err))
	}

	log.Info("moonkv stopped", zap.Int("keys", db.Len()))
}

func printReply(reply any) {
	switch r := reply.(type) {
	case nil:
		fmt.Println("(nil)")
	case bool:
		if r {
			fmt.Println("(integer) 1")
		} else {
			fmt.Println("(integer) 0")
		}
	case int64:
		fmt.Println("(integer)", r)
	case []string:
		if len(r) == 0 {
			fmt.Println("(empty list)")
			return
		}
		for i, item := range r {
			fmt.Printf("%d) %q\n", i+1, item)
		}
	case map[string]string:
		names := make([]string, 0, len(r))
		for name := range r {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s: %s\n", name, r[name])
		}
	default:
		fmt.Printf("%v\n", r)
	}
}
