package main

import (
	"fmt"
	"io"
	"log/slog"

	"honnef.co/go/pathedit"
)

// A command transforms the input path. A non-nil path is written to
// stdout as the result.
type command func(p pathedit.Path, opts options, stdout io.Writer, logger *slog.Logger) (pathedit.Path, int)

var commands = map[string]command{
	"simplify":  simplifyCmd,
	"smooth":    smoothCmd,
	"actions":   actionsCmd,
	"normalize": normalizeCmd,
}

func simplifyCmd(p pathedit.Path, opts options, _ io.Writer, logger *slog.Logger) (pathedit.Path, int) {
	out := pathedit.SimplifyOpt(p, opts.cfg.simplifyOptions())
	logger.Debug("simplified path",
		"tolerance", opts.cfg.Tolerance,
		"anchors_before", len(p.Anchors()),
		"anchors_after", len(out.Anchors()))
	return out, exitOK
}

func smoothCmd(p pathedit.Path, opts options, _ io.Writer, logger *slog.Logger) (pathedit.Path, int) {
	out := pathedit.SmoothOpt(p, pathedit.SmoothOptions{Snap: pathedit.GridSnap(opts.cfg.Grid)})
	logger.Debug("smoothed path", "commands", len(out))
	return out, exitOK
}

func actionsCmd(p pathedit.Path, opts options, stdout io.Writer, logger *slog.Logger) (pathedit.Path, int) {
	n, status := selectAnchor(p, opts, logger)
	if status != exitOK {
		return nil, status
	}
	for _, a := range n.Actions(p) {
		fmt.Fprintln(stdout, a)
	}
	return nil, exitOK
}

func normalizeCmd(p pathedit.Path, opts options, _ io.Writer, logger *slog.Logger) (pathedit.Path, int) {
	if opts.action == "" {
		logger.Error("normalize requires -action")
		return nil, exitUsage
	}
	action, ok := pathedit.ParseAction(opts.action)
	if !ok {
		logger.Error("unknown action", "action", opts.action)
		return nil, exitUsage
	}
	n, status := selectAnchor(p, opts, logger)
	if status != exitOK {
		return nil, status
	}
	out, ok := n.Apply(p, action)
	if !ok {
		logger.Error("action not applicable", "action", action, "anchor", opts.anchor, "available", n.Actions(p))
		return nil, exitError
	}
	return out, exitOK
}

// selectAnchor returns a normalizer with the anchor at index opts.anchor
// selected, counting only commands that have an anchor.
func selectAnchor(p pathedit.Path, opts options, logger *slog.Logger) (*pathedit.Normalizer, int) {
	if opts.anchor < 0 {
		logger.Error("missing -anchor")
		return nil, exitUsage
	}
	i := 0
	for _, cmd := range p {
		if !cmd.HasAnchor() {
			continue
		}
		if i == opts.anchor {
			n := &pathedit.Normalizer{}
			n.Select(cmd.ID)
			n.SetModifier(opts.alt)
			if c, ok := n.Classify(p); ok {
				logger.Debug("selected anchor", "index", c.Index, "prev", c.Prev, "next", c.Next)
			}
			return n, exitOK
		}
		i++
	}
	logger.Error("anchor out of range", "anchor", opts.anchor, "anchors", i)
	return nil, exitError
}
