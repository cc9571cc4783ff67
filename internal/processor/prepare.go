package processor

import (
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

// Job prepares one map display image.
type Job struct {
	Map     string
	Source  string
	Dest    string
	MaxSide int
	Quality int
}

// Result is the outcome of a Job.
type Result struct {
	Err     error
	Job     Job
	Width   int
	Height  int
	Skipped bool
}

// Prepare decodes the job source, downscales it to the side limit and writes
// the display image. Existing output is kept unless force is set.
func Prepare(client *http.Client, j Job, force bool) Result {
	res := Result{Job: j}

	if !force {
		if info, err := os.Stat(j.Dest); err == nil && info.Size() > 0 {
			res.Width, res.Height, res.Err = ImageSize(j.Dest)
			res.Skipped = true
			return res
		}
	}

	src, err := loadSourceImage(client, j.Source)
	if err != nil {
		res.Err = err
		return res
	}

	img := Fit(src, j.MaxSide)
	b := img.Bounds()

	log.Debug().
		Str("map", j.Map).
		Int("src_width", src.Bounds().Dx()).
		Int("src_height", src.Bounds().Dy()).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Msg("Encoding display image")

	if err := saveImage(j.Dest, img, j.Quality); err != nil {
		res.Err = err
		return res
	}

	res.Width, res.Height = b.Dx(), b.Dy()
	return res
}

// PrepareAll runs jobs on a bounded worker pool and returns results in job order.
func PrepareAll(client *http.Client, jobs []Job, concurrency int, force bool) []Result {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]Result, len(jobs))
	queue := make(chan int, len(jobs))
	for i := range jobs {
		queue <- i
	}
	close(queue)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results[i] = Prepare(client, jobs[i], force)
			}
		}()
	}
	wg.Wait()

	return results
}
