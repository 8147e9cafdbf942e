package loader

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTree creates files under root from slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// baseGame is a small but complete game folder.
var baseGame = map[string]string{
	"common/landed_titles/00_titles.txt": `
k_england = {
	d_york = {
		c_york = { b_york = { } }
		c_lincoln = { b_lincoln = { } }
	}
}
d_titular = { }
`,
	"common/religions/00_religions.txt": `
christian = {
	catholic = { }
	cathar = { parent = catholic }
	lollard = { parent = missing }
}
`,
	"common/cultures/00_cultures.txt": `
germanic = {
	saxon = { }
	norse = { parent = saxon }
}
`,
	"common/dynasties/00_dynasties.txt": `
1 = { name = "Godwinson" culture = saxon }
2 = { name = "Nobody" culture = atlantean }
`,
	"history/provinces/1 - York.txt":    "title = c_york\nculture = saxon\n",
	"history/provinces/2 - Lincoln.txt": "title = c_lincoln\n",
	"history/provinces/30 - Sea.txt":    "terrain = sea\n",
	"map/default.map": `
adjacencies = "adjacencies.csv"
sea_zones = { 30 40 }
`,
	"map/adjacencies.csv":   "From;To;Type;Through;Comment\n1;2;sea;30;Humber\n-1;-1;;;\n",
	"localisation/text.csv": "#CODE;ENGLISH;FRENCH;x\nc_york;York;York;x\n",
	"README.txt":            "not a document\n",
}

const setupLog = "[map.cpp:1021]: Adjacencies for 1 ==> 2 30\n[map.cpp:1021]: Adjacencies for 30 ==> 1\n"

// newGame writes baseGame plus extra files to a temp folder and returns
// options reading it with a setup log.
func newGame(t *testing.T, extra map[string]string) Options {
	t.Helper()
	root := t.TempDir()
	game := filepath.Join(root, "game")
	writeTree(t, game, baseGame)
	writeTree(t, game, extra)
	writeTree(t, root, map[string]string{"logs/setup.log": setupLog})
	return Options{
		GameDir:  game,
		SetupLog: filepath.Join(root, "logs", "setup.log"),
		Workers:  2,
	}
}
