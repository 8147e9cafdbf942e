// Package hierarchy assembles landed titles into the five-tier de jure tree.
//
// Titles are nested lexically in the title files:
//
//	k_england = {
//	    d_york = {
//	        c_york = { b_york = { } }
//	    }
//	}
//
// A reader keeps an Ancestry while descending and Attach links each title to
// its enclosing one. When a title block is complete it is passed to
// Tiers.Insert, so children are inserted before their parents.
//
// Redefining a title in a later document replaces it entirely. Insert
// removes stale sub-title edges left behind in higher tiers so each title
// has at most one parent. Once every document is loaded, MarkTitular flags
// titles without sub-titles and LinkCounties joins counties to provinces.
package hierarchy
