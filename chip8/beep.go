package main

import (
	"github.com/ebitengine/oto/v3"
)

const (
	kSAMPLE_RATE = 44100
	kTONE_HZ     = 440
	kAMPLITUDE   = 0x1FFF
)

// square generates an endless mono 16 bit little endian square wave.
type square struct {
	pos int
}

// Read implements io.Reader.
func (s *square) Read(b []byte) (int, error) {
	period := kSAMPLE_RATE / kTONE_HZ
	n := len(b) &^ 1
	for i := 0; i < n; i += 2 {
		v := int16(kAMPLITUDE)
		if s.pos < period/2 {
			v = -v
		}
		b[i] = byte(uint16(v))
		b[i+1] = byte(uint16(v) >> 8)
		s.pos = (s.pos + 1) % period
	}
	return n, nil
}

// beeper plays the tone while the sound timer is non-zero.
type beeper struct {
	ctx    *oto.Context
	player *oto.Player
}

func newBeeper() (*beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   kSAMPLE_RATE,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &beeper{
		ctx:    ctx,
		player: ctx.NewPlayer(&square{}),
	}, nil
}

// Set starts or stops the tone.
func (b *beeper) Set(on bool) {
	switch {
	case on && !b.player.IsPlaying():
		b.player.Play()
	case !on && b.player.IsPlaying():
		b.player.Pause()
	}
}

// Close stops the tone.
func (b *beeper) Close() {
	b.player.Pause()
	b.player.Close()
}
