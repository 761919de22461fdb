package nesrom

// buildImage makes a synthetic image. Each program bank is filled with
// 0x10+n, each graphics bank with 0x80+n and the trainer, if flagged in
// flags6, with 0x55. tail is appended after the last graphics bank.
func buildImage(prg, chr int, flags6, flags7, ram byte, tail []byte) []byte {
	b := []byte{'N', 'E', 'S', 0x1a, byte(prg), byte(chr), flags6, flags7, ram, 0, 0, 0, 0, 0, 0, 0}

	if flags6&flagTrainer != 0 {
		b = append(b, fill(TrainerSize, 0x55)...)
	}
	for n := 0; n < prg; n++ {
		b = append(b, fill(PrgBankSize, byte(0x10+n))...)
	}
	for n := 0; n < chr; n++ {
		b = append(b, fill(ChrBankSize, byte(0x80+n))...)
	}

	return append(b, tail...)
}

func fill(n int, v byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = v
	}
	return b
}
