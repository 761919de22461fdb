package nesrom

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Ignore anything bigger than the largest image an 8-bit bank count allows
const maxImageSize = HeaderSize + TrainerSize + 255*PrgBankSize + 255*ChrBankSize + 128

func isHidden(info os.FileInfo) bool {
	return info.Name()[0] == '.'
}

func (c *Catalog) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if isHidden(info) && dir != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a directory
			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Catalog) scanFile(file string) error {
	img, crc, err := crcFile(file)
	if err != nil {
		var rerr *RangeError
		if errors.Is(err, ErrHeaderMismatch) || errors.As(err, &rerr) {
			c.logger.Printf("Skipping \"%s\": %v\n", file, err)
			return nil
		}
		return err
	}

	if err := c.db.AddImage(file, crc, img); err != nil {
		return err
	}

	name, err := c.db.FindGameByCRC(crc)
	if err != nil {
		return err
	}
	if name == "" {
		c.logger.Printf("No match for \"%s\", with CRC \"%s\"\n", file, crc)
	} else {
		c.logger.Printf("Matched \"%s\" as \"%s\"\n", file, name)
	}

	return nil
}

func (c *Catalog) directoryWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			d, err := os.Open(dir)
			if err != nil {
				errc <- err
				return
			}
			infos, err := d.Readdir(0)
			d.Close()
			if err != nil {
				errc <- err
				return
			}

			for _, info := range infos {
				// Ignore hidden files and anything that isn't a normal file
				if isHidden(info) || !info.Mode().IsRegular() {
					continue
				}

				if info.Size() > maxImageSize {
					continue
				}

				if strings.ToLower(filepath.Ext(info.Name())) != ".nes" {
					continue
				}

				select {
				case <-ctx.Done():
					return
				default:
				}

				if err := c.scanFile(filepath.Join(dir, info.Name())); err != nil {
					errc <- err
					return
				}
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			cancel()
			// Drain the remaining channels so every goroutine can exit
			for range errc {
			}
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (c *Catalog) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", dir)
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	dirs, errc, err := c.findDirectories(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < c.workers; i++ {
		errc, err := c.directoryWorker(ctx, dirs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
