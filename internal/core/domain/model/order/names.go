package order

import "strings"

var nameSeparators = strings.NewReplacer(" ", "", "_", "", "-", "")

// NormalizeName folds an enumeration label to its lookup key: lower case with
// spaces, underscores and hyphens removed, so "Allotted to Vendor",
// "allotted_to_vendor" and "AllottedToVendor" compare equal.
func NormalizeName(name string) string {
	return strings.ToLower(nameSeparators.Replace(strings.TrimSpace(name)))
}
