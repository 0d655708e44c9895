package repository

import (
	"context"
	"fmt"
	"os"

	"career-qa/internal/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// knowledgeDocument is the on-disk layout of a knowledge-base file. A bare
// list of entries is accepted as well. JSON files parse the same way.
type knowledgeDocument struct {
	Entries []models.KnowledgeEntry `yaml:"entries"`
}

// KnowledgeFile reads the knowledge base from a YAML (or JSON) file.
type KnowledgeFile struct {
	path   string
	logger *zap.Logger
}

func NewKnowledgeFile(path string, logger *zap.Logger) *KnowledgeFile {
	return &KnowledgeFile{path: path, logger: logger}
}

func (f *KnowledgeFile) Path() string { return f.path }

func (f *KnowledgeFile) LoadEntries(ctx context.Context) ([]models.KnowledgeEntry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}
	entries, err := ParseKnowledge(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file %s: %w", f.path, err)
	}
	f.logger.Info("Knowledge base loaded from file",
		zap.String("path", f.path),
		zap.Int("entries", len(entries)),
	)
	return entries, nil
}

// ParseKnowledge decodes either {entries: [...]} or a top-level list.
func ParseKnowledge(data []byte) ([]models.KnowledgeEntry, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var entries []models.KnowledgeEntry
		if err := root.Decode(&entries); err != nil {
			return nil, err
		}
		return entries, nil
	}

	var doc knowledgeDocument
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

// LoadPersona reads persona overrides from a YAML file.
func LoadPersona(path string) (models.Persona, error) {
	var p models.Persona
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read persona file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse persona file %s: %w", path, err)
	}
	return p, nil
}
