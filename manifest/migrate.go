package manifest

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/hooktools/hookman/errors"
)

// MigrateConfig rewrites a legacy manifest to the modern layout: a bare
// top-level repo list is wrapped under a repos key, and sha revision keys are
// renamed to rev. It operates on the YAML node tree so comments survive.
// Already-modern input is returned unchanged.
func MigrateConfig(data []byte) ([]byte, bool, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeManifestInvalid, "failed to parse YAML manifest")
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return data, false, nil
	}

	root := doc.Content[0]
	changed := false

	if root.Kind == yaml.SequenceNode {
		wrapped := &yaml.Node{
			Kind: yaml.MappingNode,
			Tag:  "!!map",
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Tag: "!!str", Value: "repos"},
				root,
			},
		}
		doc.Content[0] = wrapped
		root = wrapped
		changed = true
	}

	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value != "repos" {
				continue
			}
			if migrateRepoNodes(root.Content[i+1]) {
				changed = true
			}
		}
	}

	if !changed {
		return data, false, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode migrated manifest")
	}
	if err := enc.Close(); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeInternal, "failed to finish migrated manifest")
	}

	return buf.Bytes(), true, nil
}

// migrateRepoNodes renames sha keys to rev within each repo mapping.
func migrateRepoNodes(reposNode *yaml.Node) bool {
	if reposNode.Kind != yaml.SequenceNode {
		return false
	}

	changed := false
	for _, repoNode := range reposNode.Content {
		if repoNode.Kind != yaml.MappingNode {
			continue
		}
		for i := 0; i+1 < len(repoNode.Content); i += 2 {
			if repoNode.Content[i].Value == "sha" {
				repoNode.Content[i].Value = "rev"
				changed = true
			}
		}
	}

	return changed
}
