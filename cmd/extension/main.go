// Sample extension demonstrating the bridge end to end: load a session, log
// what the editor looks like, echo the prompt back into the chat. Run hostsim
// first and export the environment block it prints.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExtensionBridge/bridge"
	"github.com/GriffinCanCode/ExtensionBridge/internal/logging"
)

func main() {
	logger := logging.NewDefault()
	defer logger.Sync()

	b, err := bridge.New(bridge.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to configure bridge: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sess, err := b.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}
	defer sess.Close()

	logger.Info("session loaded",
		zap.String("repo_path", sess.RepoPath()),
		zap.Int("repo_files", len(sess.RepoFiles())),
		zap.Int("terminals", len(sess.Terminals())),
	)

	if current := sess.CurrentFile(); current != nil {
		logger.Info("current file", zap.String("path", current.AbsPath()))
	}

	if err := sess.Log(ctx, "sample extension connected"); err != nil {
		log.Fatalf("Failed to log to IDE: %v", err)
	}

	if prompt := sess.Prompt(); prompt != nil {
		if err := sess.Chat(ctx, "echo: "+*prompt); err != nil {
			log.Fatalf("Failed to send chat: %v", err)
		}
		if err := sess.EndChat(ctx); err != nil {
			log.Fatalf("Failed to end chat: %v", err)
		}
	}
}
