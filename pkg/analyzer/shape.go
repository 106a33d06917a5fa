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
	"strings"

	"github.com/launchtune/estimator/pkg/common"
)

// ExampleShape is the closed set of recognized record shapes. Classification
// checks the shapes in a fixed priority order and falls back to an explicit
// unrecognized variant, never silently.
type ExampleShape int

const (
	// ShapeConversation is a list of role/content turns under "messages"
	ShapeConversation ExampleShape = iota
	// ShapeInstruction is an instruction/input/output record
	ShapeInstruction
	// ShapePreference is a preference pair with chosen/rejected completions
	ShapePreference
	// ShapeFreeText is a plain "text" record
	ShapeFreeText
	// ShapeUnrecognized matches none of the known shapes
	ShapeUnrecognized
)

var exampleShapeNames = map[ExampleShape]string{
	ShapeConversation: "conversation",
	ShapeInstruction:  "instruction",
	ShapePreference:   "preference",
	ShapeFreeText:     "free-text",
	ShapeUnrecognized: "unrecognized",
}

func (s ExampleShape) String() string {
	if name, ok := exampleShapeNames[s]; ok {
		return name
	}
	return "unrecognized"
}

// turn is one conversation message.
type turn struct {
	role    string
	content string
}

// classified is the result of classifying one example.
type classified struct {
	shape ExampleShape
	// text is the example's combined textual payload
	text string
	// turns is populated for conversation-shaped examples only
	turns []turn
}

// classify determines which known shape the example matches and extracts its
// textual payload. Shapes are tried in priority order: conversation,
// preference, instruction, free-text.
func classify(example common.DatasetExample) classified {
	if example == nil {
		return classified{shape: ShapeUnrecognized}
	}
	if turns, ok := conversationTurns(example); ok {
		parts := make([]string, 0, len(turns))
		for _, t := range turns {
			parts = append(parts, t.content)
		}
		return classified{
			shape: ShapeConversation,
			text:  strings.Join(parts, "\n"),
			turns: turns,
		}
	}
	if chosen, rejected, ok := preferencePair(example); ok {
		prompt, _ := stringField(example, "prompt")
		return classified{
			shape: ShapePreference,
			text:  strings.TrimSpace(prompt + "\n" + chosen + "\n" + rejected),
		}
	}
	if instruction, input, output, ok := instructionRecord(example); ok {
		return classified{
			shape: ShapeInstruction,
			text:  strings.TrimSpace(instruction + "\n" + input + "\n" + output),
		}
	}
	if text, ok := stringField(example, "text"); ok {
		return classified{shape: ShapeFreeText, text: text}
	}
	return classified{shape: ShapeUnrecognized}
}

// conversationTurns matches a non-empty "messages" list whose every element
// carries a string role and content.
func conversationTurns(example common.DatasetExample) ([]turn, bool) {
	raw, ok := example["messages"]
	if !ok {
		return nil, false
	}
	list, ok := raw.([]interface{})
	if !ok || len(list) == 0 {
		return nil, false
	}
	turns := make([]turn, 0, len(list))
	for _, el := range list {
		msg, ok := el.(map[string]interface{})
		if !ok {
			return nil, false
		}
		role, ok := msg["role"].(string)
		if !ok {
			return nil, false
		}
		content, ok := msg["content"].(string)
		if !ok {
			return nil, false
		}
		turns = append(turns, turn{role: role, content: content})
	}
	return turns, true
}

// preferencePair matches records with string "chosen" and "rejected" fields.
func preferencePair(example common.DatasetExample) (string, string, bool) {
	chosen, ok := stringField(example, "chosen")
	if !ok {
		return "", "", false
	}
	rejected, ok := stringField(example, "rejected")
	if !ok {
		return "", "", false
	}
	return chosen, rejected, true
}

// instructionRecord matches records with string "instruction" and "output"
// fields and an optional "input".
func instructionRecord(example common.DatasetExample) (string, string, string, bool) {
	instruction, ok := stringField(example, "instruction")
	if !ok {
		return "", "", "", false
	}
	output, ok := stringField(example, "output")
	if !ok {
		return "", "", "", false
	}
	input, _ := stringField(example, "input")
	return instruction, input, output, true
}

func stringField(example common.DatasetExample, key string) (string, bool) {
	raw, ok := example[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// brokenAlternation reports whether a conversation's turns fail to strictly
// alternate between the asker and the responder. A single leading system
// turn is allowed.
func brokenAlternation(turns []turn) bool {
	if len(turns) > 0 && turns[0].role == "system" {
		turns = turns[1:]
	}
	if len(turns) == 0 {
		return true
	}
	expected := "user"
	for _, t := range turns {
		if t.role != expected {
			return true
		}
		if expected == "user" {
			expected = "assistant"
		} else {
			expected = "user"
		}
	}
	return false
}
