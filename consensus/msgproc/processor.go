/*
github.com/tcrain/consmsg - Binary wire messages for consensus nodes.
Copyright (C) 2020 The project authors - tcrain

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.

*/

package msgproc

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tcrain/consmsg/config"
	"github.com/tcrain/consmsg/consensus/logging"
	"github.com/tcrain/consmsg/consensus/messagetypes"
	"github.com/tcrain/consmsg/consensus/types"
)

// Result is the outcome of processing one raw message.
type Result struct {
	Msg   messagetypes.Any // nil if the message could not be decoded
	Err   error            // decoding or signer lookup error
	Valid bool             // true if the signature was verified
}

// Process decodes buff and verifies its signature using keys to find the signer.
// Messages larger than maxSize are rejected.
func Process(buff []byte, keys KeyRing, maxSize int) Result {
	m, err := messagetypes.FromBytesLimit(buff, maxSize)
	if err != nil {
		return Result{Err: err}
	}
	pub, err := SignerKey(m, keys)
	if err != nil {
		return Result{Msg: m, Err: err}
	}
	return Result{Msg: m, Valid: m.Verify(pub)}
}

// VerifyBatch verifies the signatures of msgs, running at most limit verifications at once.
// The returned slice has the result of each message in order, a message whose signer is
// unknown is not valid. An error is only returned if ctx is done before all are verified.
func VerifyBatch(ctx context.Context, msgs []messagetypes.Any, keys KeyRing, limit int) ([]bool, error) {
	if limit <= 0 {
		limit = config.DefaultVerifyBatchLimit
	}
	valid := make([]bool, len(msgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, m := range msgs {
		i, m := i, m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pub, err := SignerKey(m, keys)
			if err != nil {
				logging.Debugf("No signer for batch message %d: %v", i, err)
				return nil
			}
			valid[i] = m.Verify(pub)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return valid, nil
}

// Stats counts the messages handled by a Processor.
type Stats struct {
	Processed uint64 // all messages taken from the queue
	Failed    uint64 // could not be decoded or had no known signer
	Invalid   uint64 // decoded but the signature did not verify
}

// Processor decodes and verifies raw messages using a set of threads.
// Results are sent on the channel returned by Results in the order they finish.
type Processor struct {
	keys    KeyRing
	maxSize int
	threads int

	wg       sync.WaitGroup // wait for the process threads to finish
	pending  chan []byte    // raw messages waiting to be processed
	results  chan Result
	done     chan struct{} // closed on Stop
	stopOnce sync.Once

	processed atomic.Uint64
	failed    atomic.Uint64
	invalid   atomic.Uint64
}

// NewProcessor creates a processor using the message size and thread count of cfg,
// if cfg is nil the defaults are used. Start must be called before results are produced.
func NewProcessor(keys KeyRing, cfg *config.NodeConfig) *Processor {
	if cfg == nil {
		cfg = config.DefaultNodeConfig()
	}
	threads := cfg.ProcessThreads
	if threads <= 0 {
		threads = config.DefaultMsgProcesThreads
	}
	maxSize := cfg.MaxMessageSize
	if maxSize <= 0 {
		maxSize = config.MaxMsgSize
	}
	return &Processor{
		keys:    keys,
		maxSize: maxSize,
		threads: threads,
		pending: make(chan []byte, config.InternalBuffSize),
		results: make(chan Result, config.InternalBuffSize),
		done:    make(chan struct{}),
	}
}

// Start runs the process threads.
func (p *Processor) Start() {
	for i := 0; i < p.threads; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case buff := <-p.pending:
					res := p.process(buff)
					select {
					case p.results <- res:
					case <-p.done:
						return
					}
				case <-p.done:
					return
				}
			}
		}()
	}
}

func (p *Processor) process(buff []byte) Result {
	p.processed.Add(1)
	res := Process(buff, p.keys, p.maxSize)
	switch {
	case res.Err != nil:
		p.failed.Add(1)
		logging.WithFields(logrus.Fields{"bytes": len(buff), "err": res.Err}).Debug("Dropping message")
	case !res.Valid:
		p.invalid.Add(1)
		logging.Warningf("Invalid signature on message %v", res.Msg)
	}
	return res
}

// Submit queues buff to be processed, blocking while the queue is full.
// It returns ctx.Err() if ctx is done first, or types.ErrProcessorStopped after Stop.
// buff must not be modified after it is submitted.
func (p *Processor) Submit(ctx context.Context, buff []byte) error {
	select {
	case <-p.done:
		return types.ErrProcessorStopped
	default:
	}
	select {
	case p.pending <- buff:
		return nil
	case <-p.done:
		return types.ErrProcessorStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results returns the channel of processed messages, it is closed by Stop.
func (p *Processor) Results() <-chan Result {
	return p.results
}

// Stats returns the counts of messages processed so far.
func (p *Processor) Stats() Stats {
	return Stats{
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
		Invalid:   p.invalid.Load(),
	}
}

// Stop ends the process threads and closes the results channel.
// Messages still queued are dropped. It is safe to call more than once.
func (p *Processor) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		// wait for the process threads to exit before closing their output
		p.wg.Wait()
		close(p.results)
	})
}
