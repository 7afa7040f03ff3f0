// Package resolve maps free-text student names onto canonical roster names.
//
// Resolution runs three steps against a roster index: an exact lookup of the
// normalized name, a retry with every '.' removed, and finally a fuzzy scan of
// all index keys scored by a pluggable similarity function. The fuzzy step
// only accepts a best score strictly above the configured threshold, and ties
// are broken by canonical name and then key so repeated runs agree.
package resolve
