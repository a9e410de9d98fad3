package id3v2

// deunsync reverses the unsynchronization transform: every 0xFF 0x00
// pair collapses back to a single 0xFF. This must run before frame
// parsing, since declared sizes count de-unsynchronized bytes.
func deunsync(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		out = append(out, data[i])
		if data[i] == 0xFF && i+1 < len(data) && data[i+1] == 0x00 {
			i++
		}
	}
	return out
}
