package config

import (
	"errors"
	"io/fs"
	"os"

	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
)

const exampleConfig = `# blogindex configuration
source:
  # Folder holding the markdown posts. Only top-level files are indexed.
  directory: posts
  extension: .md

output:
  data_file: public/blog_data.json
  asset_directory: public/images
  asset_url_prefix: /images

render:
  # Adds an html field rendered with goldmark to every document.
  enabled: false
  highlight_style: github

logging:
  level: info   # debug, info, warn, error
  format: text  # text or json

metrics:
  enabled: false
  address: ":9464"

watch:
  debounce: 500ms
  # Periodic staleness sweep; 0 disables it.
  interval: 1m

notify:
  # Set to publish an event after each regeneration, e.g. nats://127.0.0.1:4222
  nats_url: "${BLOGINDEX_NATS_URL}"
  subject: blogindex.generated
  # Publish retries after the first failure; backoff is fixed, linear or exponential.
  retries: 2
  retry_backoff: linear
  retry_initial: 500ms
  retry_max: 5s

bootstrap:
  # Create sample posts when the source folder is missing or empty.
  samples: true
`

// Init writes an example configuration to path. An existing file is kept
// unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "stat configuration").
			WithContext("path", path).
			Build()
	}

	// #nosec G306 - configuration is not secret
	if err := os.WriteFile(path, []byte(exampleConfig), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write configuration").
			WithContext("path", path).
			Build()
	}
	return nil
}
