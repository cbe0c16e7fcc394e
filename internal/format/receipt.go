package format

// UploadCandidate is a file the user picked as a receipt.
type UploadCandidate struct {
	Name string
	Type string // MIME type as declared by the client
	Size int64
}

// AcceptedReceiptTypes lists the MIME types a receipt may have.
var AcceptedReceiptTypes = []string{"image/jpeg", "image/jpg", "image/png"}

// IsAcceptableReceipt reports whether file is a receipt image we accept.
// A nil file is never acceptable.
func IsAcceptableReceipt(file *UploadCandidate) bool {
	if file == nil {
		return false
	}
	return IsAcceptableReceiptType(file.Type)
}

// IsAcceptableReceiptType is IsAcceptableReceipt for a bare MIME type. The
// match is exact: no case folding and no parameters.
func IsAcceptableReceiptType(mimeType string) bool {
	for _, t := range AcceptedReceiptTypes {
		if mimeType == t {
			return true
		}
	}
	return false
}
