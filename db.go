package nesrom

import (
	"database/sql"
	"encoding/xml"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// GameDB is a SQLite database of known games, keyed by CRC, and of images
// found by scanning.
type GameDB struct {
	// Serialises writers, SQLite only allows one at a time
	mu sync.Mutex
	db *sql.DB
}

func NewGameDB(file string) (*GameDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS game (id INTEGER PRIMARY KEY NOT NULL, name STRING NOT NULL UNIQUE)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS checksum (game_id INTEGER NOT NULL, crc TEXT NOT NULL UNIQUE, FOREIGN KEY(game_id) REFERENCES game(id))"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, crc TEXT NOT NULL, prg INTEGER NOT NULL, chr INTEGER NOT NULL, mapper INTEGER NOT NULL, mirror INTEGER NOT NULL, battery BOOLEAN NOT NULL, trainer BOOLEAN NOT NULL, title TEXT NOT NULL, game_id INTEGER, FOREIGN KEY(game_id) REFERENCES game(id))"); err != nil {
		return nil, err
	}

	return &GameDB{
		db: db,
	}, nil
}

type xmlDatafile struct {
	XMLName xml.Name  `xml:"datafile"`
	Games   []xmlGame `xml:"game"`
}

type xmlGame struct {
	XMLName xml.Name `xml:"game"`
	Name    string   `xml:"name,attr"`
	ROMs    []xmlROM `xml:"rom"`
}

type xmlROM struct {
	XMLName xml.Name `xml:"rom"`
	Name    string   `xml:"name,attr"`
	Size    int64    `xml:"size,attr"`
	CRC     string   `xml:"crc,attr"`
}

func (db *GameDB) ImportXML(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return err
	}

	var dat xmlDatafile
	if err := xml.Unmarshal(b, &dat); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec("UPDATE image SET game_id = NULL"); err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM checksum"); err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM game"); err != nil {
		return err
	}

	for _, g := range dat.Games {
		game, err := addGame(tx, g.Name)
		if err != nil {
			return err
		}

		for _, r := range g.ROMs {
			if r.CRC == "" {
				continue
			}
			if err := addChecksum(tx, game, normalizeCRC(r.CRC)); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func normalizeCRC(crc string) string {
	return fmt.Sprintf("%08s", strings.ToUpper(crc))
}

func (db *GameDB) Close() error {
	return db.db.Close()
}

// Satisfied by both *sql.DB and *sql.Tx
type execer interface {
	Exec(string, ...interface{}) (sql.Result, error)
	QueryRow(string, ...interface{}) *sql.Row
}

func addGame(e execer, name string) (int64, error) {
	var id int64
	switch err := e.QueryRow("SELECT id FROM game WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := e.Exec("INSERT INTO game (name) VALUES (?)", name)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

func addChecksum(e execer, game int64, crc string) error {
	if _, err := e.Exec("INSERT OR REPLACE INTO checksum (game_id, crc) VALUES (?, ?)", game, crc); err != nil {
		return err
	}
	return nil
}

func (db *GameDB) findGameIDByCRC(crc string) (sql.NullInt64, string, error) {
	var id sql.NullInt64
	var name string
	switch err := db.db.QueryRow("SELECT g.id, g.name FROM checksum AS c JOIN game AS g ON c.game_id = g.id WHERE c.crc = ?", normalizeCRC(crc)).Scan(&id, &name); err {
	case sql.ErrNoRows:
		return sql.NullInt64{}, "", nil
	case nil:
		return id, name, nil
	default:
		return sql.NullInt64{}, "", err
	}
}

// FindGameByCRC returns the name of the game with the given CRC, or an empty
// string if there isn't one.
func (db *GameDB) FindGameByCRC(crc string) (string, error) {
	_, name, err := db.findGameIDByCRC(crc)
	return name, err
}

// AddImage records a scanned image, replacing any previous record for the
// same path.
func (db *GameDB) AddImage(path, crc string, img *Image) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	game, _, err := db.findGameIDByCRC(crc)
	if err != nil {
		return err
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO image (path, crc, prg, chr, mapper, mirror, battery, trainer, title, game_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		path, normalizeCRC(crc), img.PrgBankCount(), img.ChrBankCount(), img.MapperNumber(), int(img.MirrorMode()), img.BatteryBackedRAM(), img.HasTrainer(), img.Title(), game); err != nil {
		return err
	}
	return nil
}

// ImageRecord is a scanned image as stored in the database.
type ImageRecord struct {
	Path       string
	CRC        string
	PrgBanks   int
	ChrBanks   int
	Mapper     uint8
	MirrorMode MirrorMode
	Battery    bool
	Trainer    bool
	Title      string
	Game       string
}

// Images returns every scanned image ordered by path.
func (db *GameDB) Images() ([]ImageRecord, error) {
	rows, err := db.db.Query("SELECT i.path, i.crc, i.prg, i.chr, i.mapper, i.mirror, i.battery, i.trainer, i.title, g.name FROM image AS i LEFT JOIN game AS g ON i.game_id = g.id ORDER BY i.path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ImageRecord
	for rows.Next() {
		var r ImageRecord
		var mirror int
		var game sql.NullString
		if err := rows.Scan(&r.Path, &r.CRC, &r.PrgBanks, &r.ChrBanks, &r.Mapper, &mirror, &r.Battery, &r.Trainer, &r.Title, &game); err != nil {
			return nil, err
		}
		r.MirrorMode = MirrorMode(mirror)
		r.Game = game.String
		records = append(records, r)
	}

	return records, rows.Err()
}
