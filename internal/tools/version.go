package tools

import (
	"context"
	"fmt"
	"strings"
)

func readVersion(ctx context.Context, runner CommandRunner, def Target, path string) (string, error) {
	stdout, _, _, err := runner.Run(ctx, path, def.VersionSwitch)
	if err != nil {
		return "", fmt.Errorf("%s version: %w", def.Name, err)
	}

	line := firstLine(strings.TrimSpace(string(stdout)))
	return normalizeVersionLine(def.Name, line), nil
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}

// normalizeVersionLine trims tool-specific banners down to the bare version.
// brew prints "Homebrew 4.4.2", uv prints "uv 0.5.9 (…)".
func normalizeVersionLine(name, line string) string {
	switch name {
	case "brew", "uv", "python":
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			return fields[1]
		}
	}
	return line
}
