// Command probe sends one prompt to the configured Gemini model and prints
// the reply, or the upstream status when the call fails. Useful to check an
// API key and model name before starting the service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"interview-helper/api/internal/config"
	"interview-helper/api/internal/llm"
	"interview-helper/api/internal/llm/gemini"
	"interview-helper/api/internal/util"
)

var (
	prompt = flag.String("prompt", "Write 5 interview questions for a Frontend developer (React/JS).", "prompt to send")
	model  = flag.String("model", "", "model override (default: GEMINI_MODEL)")
	asJSON = flag.Bool("json", false, "normalize the reply and print only the recovered JSON")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 2
	}
	if *model != "" {
		cfg.GeminiModel = *model
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GeminiTimeout)
	defer cancel()

	eng, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTemperature)
	if err != nil {
		fmt.Fprintln(os.Stderr, "client:", err)
		return 1
	}
	defer eng.Close()

	reply, err := eng.Generate(ctx, *prompt)
	if err != nil {
		fmt.Fprintln(os.Stderr, "STATUS:", llm.StatusOf(err))
		var ue *llm.UpstreamError
		if errors.As(err, &ue) {
			err = ue.Err
		}
		fmt.Fprintln(os.Stderr, "DETAIL:", err)
		return 1
	}

	if *asJSON {
		v, ok := util.NormalizeJSON(reply)
		if !ok {
			fmt.Fprintln(os.Stderr, "reply is not JSON")
			return 1
		}
		b, _ := json.MarshalIndent(v, "", "  ")
		fmt.Println(string(b))
		return 0
	}
	fmt.Println("REPLY:")
	fmt.Println(reply)
	return 0
}
