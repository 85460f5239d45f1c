package client

import (
	"fmt"
	"io"
	"os"
)

const (
	// LoginPath is where a 401 sends the user
	LoginPath = "/login"
	// HomePath is where a 403 sends the user
	HomePath = "/"
)

// Navigator receives the redirects the auth interceptor decides on
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// PrintNavigator writes each redirect as "→ /path"
type PrintNavigator struct {
	W io.Writer
}

func (p PrintNavigator) Navigate(path string) {
	w := p.W
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "→ %s\n", path)
}

type discardNavigator struct{}

func (discardNavigator) Navigate(string) {}
