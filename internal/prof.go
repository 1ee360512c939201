package internal

import (
	"os"
	"runtime"
	"runtime/pprof"

	"go.uber.org/zap"
)

// StartCPUProfile writes a cpu profile to path until the returned function is called
func StartCPUProfile(path string, logger *zap.Logger) (func(), error) {
	fprof, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err = pprof.StartCPUProfile(fprof); err != nil {
		_ = fprof.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		if err := fprof.Close(); err != nil {
			logger.Warn("closing cpu profile", zap.String("path", path), zap.Error(err))
			return
		}
		logger.Debug("cpu profile written", zap.String("path", path))
	}, nil
}

// WriteMemProfile writes a heap profile to path, after a garbage collection
func WriteMemProfile(path string, logger *zap.Logger) error {
	fprof, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fprof.Close()

	runtime.GC()
	mstats := new(runtime.MemStats)
	runtime.ReadMemStats(mstats)
	logger.Debug("heap profile",
		zap.Uint64("MiB for heap (un-GC)", mstats.Alloc/1024/1024),
		zap.Uint64("MiB for heap (max ever)", mstats.HeapSys/1024/1024),
		zap.Int("num go routines", runtime.NumGoroutine()),
	)
	return pprof.Lookup("heap").WriteTo(fprof, 0)
}
