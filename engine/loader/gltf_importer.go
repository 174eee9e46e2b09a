package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-swim/engine/model"
)

var errCyclicHierarchy = errors.New("node hierarchy contains a cycle")

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter defines the interface for orchestrating a full glTF/GLB import.
// It combines the parser and the skeleton extractor to produce an ImportedModel holding the
// node hierarchy, mesh descriptors and one skeleton per skin.
type gltfImporter interface {
	// Import loads a glTF/GLB file and extracts its hierarchy and skeletons.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - *model.ImportedModel: the populated imported model
	//   - error: error if import fails
	Import(path string) (*model.ImportedModel, error)

	// ImportReader loads a glTF document from a reader and extracts its hierarchy and skeletons.
	// The reader should provide a complete glTF JSON or GLB binary stream.
	//
	// Parameters:
	//   - name: fallback model name when the document carries none
	//   - r: the reader providing glTF/GLB data
	//
	// Returns:
	//   - *model.ImportedModel: the populated imported model
	//   - error: error if import fails
	ImportReader(name string, r io.Reader) (*model.ImportedModel, error)

	// ImportDocument extracts a model from an already built document.
	//
	// Parameters:
	//   - name: fallback model name when the document carries none
	//   - doc: the document to import
	//
	// Returns:
	//   - *model.ImportedModel: the populated imported model
	//   - error: error if import fails
	ImportDocument(name string, doc *gltfDocument) (*model.ImportedModel, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return imp.importFromParser(parser, name)
}

func (imp *gltfImporterImpl) ImportReader(name string, r io.Reader) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}

	return imp.importFromParser(parser, name)
}

func (imp *gltfImporterImpl) ImportDocument(name string, doc *gltfDocument) (*model.ImportedModel, error) {
	return imp.importFromParser(newGLTFParserFromDocument(doc), name)
}

// importFromParser performs a full import from a parser that has already loaded a document.
//
// Parameters:
//   - parser: the glTF parser that has already loaded a document
//   - fallbackName: name used when the default scene is unnamed
func (imp *gltfImporterImpl) importFromParser(parser gltfParser, fallbackName string) (*model.ImportedModel, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, errNoDocument
	}

	nodes, err := gltfConvertNodes(doc)
	if err != nil {
		return nil, err
	}

	roots, err := gltfRootNodes(doc)
	if err != nil {
		return nil, err
	}

	skeletons, err := newGLTFSkeletonExtractor(parser).ExtractAllSkeletons()
	if err != nil {
		return nil, fmt.Errorf("skeleton extraction failed: %w", err)
	}

	meshes := make([]model.ImportedMesh, len(doc.Meshes))
	for i, m := range doc.Meshes {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("mesh_%d", i)
		}
		meshes[i] = model.ImportedMesh{Name: name, PrimitiveCount: len(m.Primitives)}
	}

	return &model.ImportedModel{
		Name:      gltfExtractModelName(doc, fallbackName),
		Nodes:     nodes,
		RootNodes: roots,
		Meshes:    meshes,
		Skeletons: skeletons,
	}, nil
}

// --- Helper Functions ---

// gltfConvertNodes converts document nodes into ImportedNodes, validating every index and
// rejecting hierarchies where a node has two parents or where parent links form a cycle.
func gltfConvertNodes(doc *gltfDocument) ([]model.ImportedNode, error) {
	parent := make([]int, len(doc.Nodes))
	for i := range parent {
		parent[i] = -1
	}

	nodes := make([]model.ImportedNode, len(doc.Nodes))
	for i := range doc.Nodes {
		src := &doc.Nodes[i]

		for _, c := range src.Children {
			if c < 0 || c >= len(doc.Nodes) {
				return nil, fmt.Errorf("node %d: child index %d out of range", i, c)
			}
			if parent[c] >= 0 {
				return nil, fmt.Errorf("node %d has two parents (%d and %d)", c, parent[c], i)
			}
			parent[c] = i
		}

		dst := model.ImportedNode{
			Name:           src.Name,
			Children:       append([]int(nil), src.Children...),
			Mesh:           -1,
			Skin:           -1,
			LocalTransform: gltfExtractNodeTransform(src),
		}
		if dst.Name == "" {
			dst.Name = fmt.Sprintf("node_%d", i)
		}
		if src.Mesh != nil {
			if *src.Mesh < 0 || *src.Mesh >= len(doc.Meshes) {
				return nil, fmt.Errorf("node %d: mesh index %d out of range", i, *src.Mesh)
			}
			dst.Mesh = *src.Mesh
		}
		if src.Skin != nil {
			if *src.Skin < 0 || *src.Skin >= len(doc.Skins) {
				return nil, fmt.Errorf("node %d: skin index %d out of range", i, *src.Skin)
			}
			dst.Skin = *src.Skin
		}
		nodes[i] = dst
	}

	for i := range parent {
		hops := 0
		for p := parent[i]; p >= 0; p = parent[p] {
			if hops++; hops > len(parent) {
				return nil, fmt.Errorf("node %d: %w", i, errCyclicHierarchy)
			}
		}
	}

	return nodes, nil
}

// gltfRootNodes returns the root nodes of the default scene. Documents without scenes fall
// back to every node that has no parent.
func gltfRootNodes(doc *gltfDocument) ([]int, error) {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil {
			idx = *doc.Scene
		}
		if idx < 0 || idx >= len(doc.Scenes) {
			return nil, fmt.Errorf("default scene %d out of range", idx)
		}
		for _, n := range doc.Scenes[idx].Nodes {
			if n < 0 || n >= len(doc.Nodes) {
				return nil, fmt.Errorf("scene %d: node index %d out of range", idx, n)
			}
		}
		return append([]int(nil), doc.Scenes[idx].Nodes...), nil
	}

	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			hasParent[c] = true
		}
	}

	var roots []int
	for i, p := range hasParent {
		if !p {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

// gltfExtractModelName derives a model name from the default scene or a fallback.
func gltfExtractModelName(doc *gltfDocument, fallback string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}

	if fallback != "" {
		return fallback
	}

	return "unnamed_model"
}
