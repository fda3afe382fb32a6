package xmlparser

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"dbtool/model"
)

// LoadDir загружает все XML-документы схем из каталога параллельно.
// Возвращает успешно разобранные документы (ключ - путь относительно dir без .xml)
// и объединённую ошибку по файлам, которые разобрать не удалось.
func LoadDir(dir string) (map[string]*model.Database, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".xml") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	docs := make(map[string]*model.Database, len(files))
	var (
		mu   sync.Mutex
		errs []error
	)

	jobs := make(chan string)
	var wg sync.WaitGroup
	workerCount := runtime.NumCPU() * 2

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				name := docName(dir, path)
				db, err := LoadFile(path)

				mu.Lock()
				if err != nil {
					errs = append(errs, err)
				} else {
					docs[name] = db
				}
				mu.Unlock()

				if err != nil {
					log.Printf("Error parsing %s: %v", path, err)
					continue
				}
				log.Printf("Parsed %s: %d tables", name, len(db.Tables))
			}
		}()
	}

	for _, path := range files {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	return docs, errors.Join(errs...)
}

// LoadFile читает один XML-документ схемы
func LoadFile(path string) (*model.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	db, err := model.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

func docName(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), ".xml")
}
