//Error values returned while loading and compiling translations

package translate

import "errors"

var (
	ErrConfiguration       = errors.New("translate: configuration error")
	ErrMissingFallbackFile = errors.New("translate: fallback language file could not be read")
	ErrParse               = errors.New("translate: translation text file could not be parsed")
	ErrKeyCollision        = errors.New("translate: flattened key collision")
	ErrInvalidArtifact     = errors.New("translate: invalid compiled artifact")
	ErrEmptyLanguage       = errors.New("translate: language cannot be empty")
)
