// Package analyzer answers free-form questions about the project in the
// working directory.
package analyzer

import (
	"context"
	"fmt"

	"github.com/helmcode/scriptmonkey/pkg/llm"
	"github.com/helmcode/scriptmonkey/pkg/prompts"
	"github.com/helmcode/scriptmonkey/pkg/workspace"
)

// TreeDepth limits how deep the directory tree attached to a question goes.
const TreeDepth = 6

type Analyzer struct {
	llm llm.LLM
}

func NewWithLLM(l llm.LLM) *Analyzer {
	return &Analyzer{llm: l}
}

// Request is a question with the context to send along with it.
type Request struct {
	Question string
	Files    []string
	// TreeRoot, when set, attaches the directory tree rooted there.
	TreeRoot string
}

// Answer holds the model's Markdown reply and the tree that was sent, if any.
type Answer struct {
	Text string
	Tree string
}

func (a *Analyzer) Ask(ctx context.Context, req Request) (*Answer, error) {
	docs := workspace.ReadDocuments(req.Files)

	var tree string
	if req.TreeRoot != "" {
		var err error
		tree, err = workspace.CreateTree(req.TreeRoot, workspace.TreeOptions{MaxDepth: TreeDepth})
		if err != nil {
			return nil, err
		}
	}

	rawResp, err := a.llm.Chat(ctx, prompts.BuildAskPrompt(req.Question, docs, tree))
	if err != nil {
		return nil, fmt.Errorf("LLM chat: %w", err)
	}
	return &Answer{Text: rawResp, Tree: tree}, nil
}
