// Copyright 2025 The LaunchTune Authors. All rights reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// TokenizerHeuristicV1 approximates subword token counts from characters
	// and words
	TokenizerHeuristicV1 = "heuristic-v1"
	// TokenizerWhitespace counts whitespace-separated words
	TokenizerWhitespace = "whitespace"

	// DefaultTokenizer is used when the caller names no scheme
	DefaultTokenizer = TokenizerHeuristicV1
)

// A tokenizerFunc counts the tokens of a text. Implementations must be
// deterministic and stateless: the same text always yields the same count.
type tokenizerFunc func(text string) (int, error)

var (
	tokenizerLocker = &sync.RWMutex{}
	tokenizers      = make(map[string]tokenizerFunc)
)

func init() {
	registerTokenizer(TokenizerHeuristicV1, countTokensHeuristicV1)
	registerTokenizer(TokenizerWhitespace, countTokensWhitespace)
}

func registerTokenizer(name string, fn tokenizerFunc) error {
	tokenizerLocker.Lock()
	defer tokenizerLocker.Unlock()

	if _, found := tokenizers[name]; found {
		err := fmt.Errorf("%s tokenizer has already registered", name)
		return err
	}
	tokenizers[name] = fn
	return nil
}

func hasTokenizer(name string) bool {
	tokenizerLocker.RLock()
	defer tokenizerLocker.RUnlock()
	_, found := tokenizers[name]
	return found
}

// CountTokens counts the tokens of text with the named scheme.
func CountTokens(name, text string) (int, error) {
	tokenizerLocker.RLock()
	fn := tokenizers[name]
	tokenizerLocker.RUnlock()

	if fn == nil {
		return 0, fmt.Errorf("%s tokenizer does not register", name)
	}
	return fn(text)
}

// countTokensHeuristicV1 approximates a subword tokenizer: roughly one token
// per four characters, never fewer than the word count.
func countTokensHeuristicV1(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, nil
	}
	words := len(strings.Fields(trimmed))
	byChars := (utf8.RuneCountInString(trimmed) + 3) / 4
	if words > byChars {
		return words, nil
	}
	return byChars, nil
}

func countTokensWhitespace(text string) (int, error) {
	return len(strings.Fields(text)), nil
}
