/*
Package nesrom is a library for decoding and cataloguing iNES cartridge
images.

Decode validates the 16 byte header and returns an Image from which the bank
counts, mirroring, mapper number and the offsets of each region can be
derived. Regions are only checked against the size of the image when they are
accessed so a truncated image can still be partially used.
*/
package nesrom

import "log"

const defaultWorkers = 10

// Catalog scans directories of images and records them in a GameDB.
type Catalog struct {
	db      *GameDB
	logger  *log.Logger
	workers int
}

func New(db *GameDB, logger *log.Logger) *Catalog {
	return &Catalog{
		db:      db,
		logger:  logger,
		workers: defaultWorkers,
	}
}

func (c *Catalog) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	c.workers = n
}

// Identify decodes file and returns it with its CRC and, if known, the name
// of the game.
func (c *Catalog) Identify(file string) (*Image, string, string, error) {
	img, crc, err := crcFile(file)
	if err != nil {
		return nil, "", "", err
	}
	name, err := c.db.FindGameByCRC(crc)
	if err != nil {
		return nil, "", "", err
	}
	return img, crc, name, nil
}
