package nesrom

// Tile is a view of a single 16 byte tile record within a graphics bank.
type Tile []byte

// TileIterator walks every tile record in every graphics bank in order.
type TileIterator struct {
	img  *Image
	bank int
	n    int
	tile Tile
	err  error
}

// Tiles returns a new iterator positioned before the first tile record.
func (i *Image) Tiles() *TileIterator {
	return &TileIterator{
		img: i,
		n:   -1,
	}
}

// Next advances to the next tile record. It returns false once every graphics
// bank has been exhausted or a tile record runs past the end of the image,
// in which case Err returns the reason.
func (it *TileIterator) Next() bool {
	if it.err != nil {
		return false
	}

	it.n++
	if it.n == TilesPerBank {
		it.bank, it.n = it.bank+1, 0
	}
	if it.bank >= it.img.ChrBankCount() {
		it.tile = nil
		return false
	}

	offset := it.img.ChrBankOffset(it.bank) + it.n*TileSize
	if offset+TileSize > it.img.Len() {
		it.tile = nil
		it.err = &RangeError{
			Region: "tile",
			Index:  it.bank*TilesPerBank + it.n,
			Offset: offset,
			Size:   TileSize,
			Len:    it.img.Len(),
		}
		return false
	}

	it.tile = Tile(it.img.b[offset : offset+TileSize : offset+TileSize])
	return true
}

func (it *TileIterator) Tile() Tile {
	return it.tile
}

func (it *TileIterator) Bank() int {
	return it.bank
}

// Err returns the error, if any, that stopped the iteration.
func (it *TileIterator) Err() error {
	return it.err
}

// AllTiles collects every tile record. It stops at the first record that
// doesn't fit within the image.
func (i *Image) AllTiles() ([]Tile, error) {
	tiles := make([]Tile, 0, i.ChrBankCount()*TilesPerBank)
	it := i.Tiles()
	for it.Next() {
		tiles = append(tiles, it.Tile())
	}
	return tiles, it.Err()
}
