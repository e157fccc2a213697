package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/benbeisheim/chessrules/internal/config"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/keygen"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

func main() {
	cfg := config.MustLoad("sshd")
	logger := cfg.NewLogger("sshd")

	if err := ensureHostKey(cfg.HostKeyPath, logger); err != nil {
		logger.Fatal("host key", "err", err)
	}

	s, err := wish.NewServer(
		wish.WithAddress(cfg.SSHAddr),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(logger)),
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		logger.Fatal("create server", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	logger.Info("starting SSH chess server", "addr", cfg.SSHAddr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("serve", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("stopping SSH server")

	tctx, tcancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer tcancel()
	if err := s.Shutdown(tctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		logger.Fatal("shutdown", "err", err)
	}
}

// ensureHostKey generates an ed25519 host key at path when none exists.
func ensureHostKey(path string, logger *log.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	logger.Info("generating SSH host key", "path", path)
	_, err := keygen.New(path, keygen.WithKeyType(keygen.Ed25519), keygen.WithWrite())
	return err
}

// Every session plays its own hot-seat game.
func teaHandler(logger *log.Logger) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		logger.Info("new game", "user", s.User(), "remote", s.RemoteAddr())
		return tui.New(model.NewGame()), []tea.ProgramOption{tea.WithAltScreen()}
	}
}
