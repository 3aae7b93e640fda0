package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-errors/errors"
	"github.com/yaoapp/kun/log"
)

// Source supplies the root document. Network, cache and asset strategies
// live behind this interface; the core only consumes their output.
type Source interface {
	Load() (*DUIConfig, error)
}

// MemorySource a document held in memory, the usual test and embed source
type MemorySource struct {
	Data   []byte
	Format string // "json" (default) or "yaml"
}

// Load parse the bytes
func (source *MemorySource) Load() (*DUIConfig, error) {
	if strings.EqualFold(source.Format, "yaml") {
		return FromYaml(source.Data)
	}
	return FromJson(source.Data)
}

// FileSource a document on disk, reloadable on change (dev workflow)
type FileSource struct {
	Path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileSource create a file source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load read and parse the file; YAML by extension, JSON otherwise
func (source *FileSource) Load() (*DUIConfig, error) {
	data, err := os.ReadFile(source.Path)
	if err != nil {
		return nil, errors.Errorf("config: cannot read %s: %s", source.Path, err.Error())
	}

	switch strings.ToLower(filepath.Ext(source.Path)) {
	case ".yaml", ".yml":
		return FromYaml(data)
	default:
		return FromJson(data)
	}
}

// Watch reload the document on every write to the file and hand the fresh
// parse to onChange. Parse failures are logged, never fatal: a half-saved
// file must not kill the watch loop.
func (source *FileSource) Watch(onChange func(*DUIConfig)) error {
	if source.watcher != nil {
		return errors.Errorf("config: %s is already being watched", source.Path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(source.Path); err != nil {
		watcher.Close()
		return err
	}

	source.watcher = watcher
	source.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				config, err := source.Load()
				if err != nil {
					log.Warn("config: reload of %s failed: %s", source.Path, err.Error())
					continue
				}
				log.Info("config: reloaded %s (version %d)", source.Path, config.Version)
				onChange(config)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("config: watch error on %s: %s", source.Path, err.Error())
			case <-source.done:
				return
			}
		}
	}()
	return nil
}

// Close stop watching
func (source *FileSource) Close() error {
	if source.watcher == nil {
		return nil
	}
	close(source.done)
	err := source.watcher.Close()
	source.watcher = nil
	return err
}
