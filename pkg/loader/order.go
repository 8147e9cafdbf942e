package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/pdx/lexer"
	"chronicle-hq/chronicle/pkg/readers"
)

// layer is a folder tree documents are read from: the base game or a mod.
type layer struct {
	name     string
	root     string
	replaces []string // folders whose earlier documents are dropped
}

// layers returns the base game followed by every mod in load order.
func layers(gameDir string, mods []*entity.Mod, roots []string) []layer {
	out := []layer{{root: gameDir}}
	for i, m := range mods {
		out = append(out, layer{name: m.Name, root: roots[i], replaces: m.Replaces})
	}
	return out
}

// readMods reads the mod descriptors in order and returns each mod with the
// folder its files live in. A mod's path is relative to the folder that
// holds the descriptor's "mod" directory.
func readMods(paths []string, maxSize int64) ([]*entity.Mod, []string, error) {
	var mods []*entity.Mod
	var roots []string
	for _, p := range paths {
		data, err := readFile(p, maxSize)
		if err != nil {
			return nil, nil, err
		}
		c, err := lexer.New(p, data)
		if err != nil {
			return nil, nil, &LoadError{FilePath: p, Message: "invalid mod descriptor", Cause: err}
		}
		m, err := readers.ReadMod(c, p)
		if err != nil {
			return nil, nil, &LoadError{FilePath: p, Message: "invalid mod descriptor", Cause: err}
		}
		if m.Path == "" {
			msg := "mod descriptor has no path"
			if m.Archive != "" {
				msg = "archived mods are not supported"
			}
			return nil, nil, &LoadError{FilePath: p, Message: msg}
		}
		root := filepath.FromSlash(m.Path)
		if !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(filepath.Dir(p)), root)
		}
		if m.Name == "" {
			m.Name = filepath.Base(root)
		}
		mods = append(mods, m)
		roots = append(roots, root)
	}
	return mods, roots, nil
}

// overlay keeps the ordered document set while layers are applied.
// A document replacing an existing Rel takes its position; new documents
// are appended.
type overlay struct {
	order []string
	byRel map[string]Document
}

func newOverlay() *overlay {
	return &overlay{byRel: make(map[string]Document)}
}

func (o *overlay) put(d Document) {
	if _, ok := o.byRel[d.Rel]; !ok {
		o.order = append(o.order, d.Rel)
	}
	o.byRel[d.Rel] = d
}

// drop removes every document under folder.
func (o *overlay) drop(folder string) {
	prefix := strings.TrimSuffix(folder, "/") + "/"
	o.order = slices.DeleteFunc(o.order, func(rel string) bool {
		if strings.HasPrefix(rel, prefix) {
			delete(o.byRel, rel)
			return true
		}
		return false
	})
}

func (o *overlay) documents() []Document {
	out := make([]Document, 0, len(o.order))
	for _, rel := range o.order {
		out = append(out, o.byRel[rel])
	}
	return out
}

// discover builds the ordered document list from the layers: base game
// documents sorted by relative path, then each mod in order, dropping the
// folders it replaces and overriding documents with the same relative path.
func discover(ls []layer) ([]Document, error) {
	if err := checkDir(ls[0].root); err != nil {
		return nil, err
	}

	o := newOverlay()
	for _, l := range ls {
		for _, folder := range l.replaces {
			o.drop(folder)
		}
		rels, err := collect(l.root)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			o.put(Document{
				Path:  filepath.Join(l.root, filepath.FromSlash(rel)),
				Rel:   rel,
				Kind:  KindOf(rel),
				Layer: l.name,
			})
		}
	}
	return o.documents(), nil
}

// explicit builds the document list from caller-supplied relative paths,
// kept in the given order.
func explicit(gameDir string, rels []string) []Document {
	out := make([]Document, 0, len(rels))
	for _, rel := range rels {
		rel = filepath.ToSlash(filepath.Clean(rel))
		out = append(out, Document{
			Path: filepath.Join(gameDir, filepath.FromSlash(rel)),
			Rel:  rel,
			Kind: KindOf(rel),
		})
	}
	return out
}

// collect returns the sorted relative paths of every document under root.
// Missing folders are skipped; mods only carry some of them.
func collect(root string) ([]string, error) {
	var rels []string

	if fileExists(filepath.Join(root, filepath.FromSlash(mapDescriptor))) {
		rels = append(rels, mapDescriptor)
	}

	for _, f := range folders {
		dir := filepath.Join(root, filepath.FromSlash(f.dir))
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if strings.HasPrefix(d.Name(), ".") && p != dir {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(p), f.ext) {
				return nil
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			rels = append(rels, filepath.ToSlash(rel))
			return nil
		})
		if err != nil {
			return nil, &LoadError{FilePath: dir, Message: "failed to scan folder", Cause: err}
		}
	}

	slices.Sort(rels)
	return rels, nil
}

// resolveAux finds an auxiliary file (not itself a document) through the
// layers, last mod first. A layer replacing a folder containing rel hides
// the layers below it.
func resolveAux(ls []layer, rel string) (string, bool) {
	for i := len(ls) - 1; i >= 0; i-- {
		p := filepath.Join(ls[i].root, filepath.FromSlash(rel))
		if fileExists(p) {
			return p, true
		}
		for _, folder := range ls[i].replaces {
			if strings.HasPrefix(rel, strings.TrimSuffix(folder, "/")+"/") {
				return "", false
			}
		}
	}
	return "", false
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadError{FilePath: dir, Message: "game directory not found", Cause: err}
		}
		return &LoadError{FilePath: dir, Message: "failed to access game directory", Cause: err}
	}
	if !info.IsDir() {
		return &LoadError{FilePath: dir, Message: "not a directory"}
	}
	return nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// readFile reads a document after checking it is a regular file within
// the size limit.
func readFile(p string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(p)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, &LoadError{FilePath: p, Message: "file not found", Cause: err}
		case os.IsPermission(err):
			return nil, &LoadError{FilePath: p, Message: "permission denied", Cause: err}
		default:
			return nil, &LoadError{FilePath: p, Message: "failed to access file", Cause: err}
		}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{FilePath: p, Message: "not a regular file"}
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, &LoadError{
			FilePath: p,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), maxSize),
		}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, &LoadError{FilePath: p, Message: "failed to read file", Cause: err}
	}
	return data, nil
}
