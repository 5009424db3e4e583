package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BertoldVdb/ms21xx-fwgen/msfw"
	"github.com/adrg/xdg"
	"github.com/golang/glog"
)

const appName = "ms21xx-fwgen"

func baseCandidates(p *msfw.Profile) []string {
	candidates := []string{filepath.Join("firmwares", p.BaseImage)}

	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "firmwares", p.BaseImage))
	}

	return candidates
}

func findBase(p *msfw.Profile) (string, error) {
	for _, c := range baseCandidates(p) {
		if st, err := os.Stat(c); err == nil && st.Mode().IsRegular() {
			return c, nil
		}
	}

	rel := filepath.Join(appName, "firmwares", p.BaseImage)
	path, err := xdg.SearchDataFile(rel)
	if err != nil {
		return "", fmt.Errorf("no base image for %s, use --base or install it as %s", p.Name, filepath.Join(xdg.DataHome, rel))
	}
	return path, nil
}

// loadBase reads the base firmware for p, from override if it is set.
func loadBase(p *msfw.Profile, override string) ([]byte, error) {
	path := override
	if path == "" {
		var err error
		if path, err = findBase(p); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read base image: %w", err)
	}

	glog.V(1).Infof("Using base image %s (%d bytes)", path, len(data))
	return data, nil
}
