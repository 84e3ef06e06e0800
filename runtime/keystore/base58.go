package keystore

// base58Alphabet is the Bitcoin-style alphabet (no 0/O/I/l ambiguity),
// used to render SecretHandle ids compactly.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// encodeBase58 encodes up to 8 bytes (a uint64) to a Base58 string.
func encodeBase58(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var num [8]byte
	copy(num[:], data)

	var result []byte
	for {
		zero := true
		for _, b := range num {
			if b != 0 {
				zero = false
				break
			}
		}
		if zero {
			break
		}
		var remainder byte
		for j := 0; j < 8; j++ {
			temp := int(num[j]) + int(remainder)*256
			num[j] = byte(temp / 58)
			remainder = byte(temp % 58)
		}
		result = append([]byte{base58Alphabet[remainder]}, result...)
	}

	for i := 0; i < len(data); i++ {
		if data[i] != 0 {
			break
		}
		result = append([]byte{'1'}, result...)
	}

	return string(result)
}
