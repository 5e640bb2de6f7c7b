package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Photo struct {
	Caption string `json:"caption"`
	Date    string `json:"date"`
	Path    string `json:"path,omitempty"`
}

type Track struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration string `json:"duration"`
	File     string `json:"file,omitempty"`
}

type Config struct {
	Theme     string  `json:"theme"`
	Sound     bool    `json:"sound"`
	Music     bool    `json:"music"`
	Volume    int     `json:"volume"`
	Recipient string  `json:"recipient"`
	Message   string  `json:"message"`
	Photos    []Photo `json:"photos,omitempty"`
	Playlist  []Track `json:"playlist,omitempty"`

	path string
}

type ScoreEntry struct {
	Score int
	Lines int
	Level int
	When  string
}

func defaultConfig() Config {
	return Config{
		Theme:     themes[0].Name,
		Sound:     true,
		Music:     true,
		Volume:    70,
		Recipient: defaultRecipientName(),
	}
}

// loadConfig reads the config at path, or the per-user default location when
// path is empty. A missing file is not an error.
func loadConfig(path string) (Config, error) {
	config := defaultConfig()
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return config, err
		}
	}
	config.path = path
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		fallback := defaultConfig()
		fallback.path = path
		return fallback, err
	}
	config.normalize()
	return config, nil
}

func (c *Config) normalize() {
	if themeIndexByName(c.Theme) < 0 {
		c.Theme = themes[0].Name
	}
	c.Volume = clampVolumePercent(c.Volume)
	if strings.TrimSpace(c.Recipient) == "" {
		c.Recipient = defaultRecipientName()
	}
}

func saveConfig(config Config) error {
	path := config.path
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func configPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "heytmlboy", "config.json"), nil
}

// insertScore keeps the session's best ten results, newest first on ties.
func insertScore(scores []ScoreEntry, entry ScoreEntry) []ScoreEntry {
	scores = append(scores, entry)
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score == scores[j].Score {
			return scores[i].When > scores[j].When
		}
		return scores[i].Score > scores[j].Score
	})
	if len(scores) > 10 {
		return scores[:10]
	}
	return scores
}
