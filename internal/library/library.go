// Package library finds and decodes every chart container in a directory.
package library

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"git.lost.host/meutraa/radial/internal/game"
	"git.lost.host/meutraa/radial/internal/parser"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
	"github.com/sirupsen/logrus"
)

const Extension = ".osz"

type Entry struct {
	Path  string
	Chart *game.Chart
}

type Failure struct {
	Path string
	Err  error
}

type Library struct {
	Parser  *parser.DefaultParser
	Workers int
	Log     logrus.FieldLogger
}

// Find lists the chart containers under dir, sorted by path.
func Find(dir string) ([]string, error) {
	paths := []string{}
	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(p), Extension) {
			paths = append(paths, p)
		}
		return nil
	})
	if nil != err {
		return nil, errors.Wrap(err, "unable to walk chart directory")
	}
	sort.Strings(paths)
	return paths, nil
}

// Load decodes every container under dir, at most Workers at a time. A
// container that fails to decode is reported and does not stop the others.
func (l *Library) Load(ctx context.Context, dir string) ([]Entry, []Failure, error) {
	paths, err := Find(dir)
	if nil != err {
		return nil, nil, err
	}
	log := l.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	workers := l.Workers
	if workers < 1 {
		workers = 1
	}

	charts := make([]*game.Chart, len(paths))
	errs := make([]error, len(paths))

	var mu sync.Mutex
	done := 0
	swg := sizedwaitgroup.New(workers)
	for i, p := range paths {
		if err := swg.AddWithContext(ctx); nil != err {
			break
		}
		go func(i int, p string) {
			defer swg.Done()
			charts[i], errs[i] = l.Parser.DecodeFile(p)

			mu.Lock()
			done++
			log.WithFields(logrus.Fields{
				"path":     p,
				"progress": done,
				"total":    len(paths),
			}).Debug("decoded chart container")
			mu.Unlock()
		}(i, p)
	}
	swg.Wait()
	if err := ctx.Err(); nil != err {
		return nil, nil, err
	}

	entries := []Entry{}
	failures := []Failure{}
	for i, p := range paths {
		if nil != errs[i] {
			log.WithError(errs[i]).WithField("path", p).Warn("skipping chart container")
			failures = append(failures, Failure{Path: p, Err: errs[i]})
			continue
		}
		entries = append(entries, Entry{Path: p, Chart: charts[i]})
	}
	return entries, failures, nil
}
