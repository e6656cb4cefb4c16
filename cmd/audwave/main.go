// SPDX-License-Identifier: EPL-2.0

// Command audwave renders waveform images and peak data from audio files.
//
//	audwave waveform --auto-width 10 --method rms song.mp3
//	audwave data --pixels-per-second 20 -b 8 song.wav
//	audwave convert --rate 8000 --mono song.ogg song.wav
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "audwave:", err)
		stop()
		os.Exit(1)
	}
}
