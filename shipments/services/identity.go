package services

import (
	"crypto/md5"
	"encoding/hex"
)

// RecordIdentity derives the stable join key between a logistics row and its
// overlay row: an MD5 hex digest over the five identity fields in their
// stored string form, concatenated in order. Empty fields digest like any
// other value, so the function is total. Editing any of the five fields in
// the workbook yields a new identity and orphans the old overlay row; that is
// the accepted trade-off of content-derived identity.
func RecordIdentity(supplier, material, spec, deliveryTime, project string) string {
	sum := md5.Sum([]byte(supplier + material + spec + deliveryTime + project))
	return hex.EncodeToString(sum[:])
}
