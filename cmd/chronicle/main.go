// Chronicle loads the game-data folders of a grand strategy title, layers
// mods over them and builds a cross-referenced world: the landed title
// hierarchy, provinces and their adjacency graph, religions, cultures and
// dynasties.
//
// Usage:
//
//	# Load the game folder and print a summary
//	chronicle load --game-dir /games/ck2
//
//	# Load with mods, failing on any diagnostic
//	chronicle load --game-dir /games/ck2 --mod mods/better.mod --strict
//
//	# Print a document as a value tree
//	chronicle inspect common/cultures/00_cultures.txt
//
//	# Export the loaded world as compressed JSON
//	chronicle export --out world.json.xz --compress
//
//	# Reload whenever files change
//	chronicle watch --config chronicle.yaml
package main

func main() {
	Execute()
}
