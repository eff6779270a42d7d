package main

import "io"

// readCloser adapts a cobra input stream to the io.ReadCloser promptui expects
type readCloser struct {
	io.Reader
}

func (readCloser) Close() error { return nil }

// writeCloser adapts a cobra output stream to the io.WriteCloser promptui expects
type writeCloser struct {
	io.Writer
}

func (writeCloser) Close() error { return nil }
