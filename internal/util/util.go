// Package util provides content hashing and front matter helpers for imported notes.
package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/gomarkdown/markdown"

	"github.com/mmarkdown/mmark/v2/mast"
)

type ExtendedTitleData struct {
	*mast.TitleData
	// Bytes of the normalized input taken up by the front matter block.
	Consumed int
}

var frontMatterDelimiter = []byte("%%%")

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func ContentHashString(content string) string {
	return ContentHash([]byte(content))
}

// GetFrontMatter parses a leading %%% delimited TOML block, as used by mmark documents.
func GetFrontMatter(md []byte) (*ExtendedTitleData, error) {
	md = normalize(md)

	if len(md) < 2*len(frontMatterDelimiter) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	first := bytes.Index(md[:len(frontMatterDelimiter)+1], frontMatterDelimiter)
	if first == -1 {
		return nil, fmt.Errorf("invalid front matter format")
	}

	second := bytes.Index(md[first+len(frontMatterDelimiter):], frontMatterDelimiter)
	if second == -1 {
		return nil, fmt.Errorf("invalid front matter format")
	}

	end := second + 2*len(frontMatterDelimiter) + 1
	if end > len(md) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	frontMatter := md[len(frontMatterDelimiter) : end-len(frontMatterDelimiter)-1]
	info := &ExtendedTitleData{
		TitleData: &mast.TitleData{},
	}

	if _, err := toml.Decode(string(frontMatter), info); err != nil {
		return nil, fmt.Errorf("failed to decode front matter: %w", err)
	}

	if info.Language == "" {
		info.Language = "en"
	}
	info.Consumed = end

	return info, nil
}

// SplitFrontMatter returns the front matter, if any, and the markdown that follows it.
func SplitFrontMatter(md []byte) (*ExtendedTitleData, []byte) {
	info, err := GetFrontMatter(md)
	if err != nil {
		return nil, md
	}
	return info, bytes.TrimLeft(normalize(md)[info.Consumed:], "\n")
}

func normalize(md []byte) []byte {
	md = markdown.NormalizeNewlines(md)
	return bytes.TrimLeft(md, "\n \t\r")
}
