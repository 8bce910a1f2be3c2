package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
	"github.com/MrSnakeDoc/reelpanel/internal/reelstore"
)

// promptConfirmer asks a y/N question on the terminal. Anything but y/yes cancels.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

var _ reelstore.Confirmer = promptConfirmer{}

func (p promptConfirmer) Confirm(_ context.Context, reel domain.Reel) bool {
	fmt.Fprintf(p.out, "Delete reel %d (%s, %s)? [y/N] ", reel.ID, reel.Keyword, reel.Link)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
