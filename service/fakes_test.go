package service

import (
	"context"
	"errors"

	"github.com/nordgaard/saiborg-be/types"
)

// Deterministic fakes for the capability interfaces so the pipeline can be
// tested without any remote collaborator.

type fakeLLM struct {
	reply     string
	err       error
	prompts   []string
	callCount int
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.callCount++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = f.vector
	}
	return vectors, nil
}

type fakeSearcher struct {
	chunks []types.DocumentChunk
	err    error
}

func (f *fakeSearcher) SearchSimilar(_ context.Context, _ []float32, limit int) ([]types.DocumentChunk, []float32, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	chunks := f.chunks
	if limit > 0 && len(chunks) > limit {
		chunks = chunks[:limit]
	}
	distances := make([]float32, len(chunks))
	return chunks, distances, nil
}

type fakeCRM struct {
	configured  bool
	account     *types.MondayAccount
	items       []types.MondayItem
	fetchErr    error
	meErr       error
	fetchCalls  int
	searchCalls int
	searchTerms []string
}

func (f *fakeCRM) Configured() bool {
	return f.configured
}

func (f *fakeCRM) Me(_ context.Context) (*types.MondayAccount, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	if f.account == nil {
		return nil, errors.New("no user info returned")
	}
	return f.account, nil
}

func (f *fakeCRM) FetchAllItems(_ context.Context, _ string) ([]types.MondayItem, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.items, nil
}

func (f *fakeCRM) SearchItemsByText(_ context.Context, _ string, text string) []types.MondayItem {
	f.searchCalls++
	f.searchTerms = append(f.searchTerms, text)
	if text == "" {
		return nil
	}
	return f.items
}
