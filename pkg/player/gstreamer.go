package player

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-gst/go-gst/gst"
)

// GstPipeline drives a single long-lived GStreamer graph that decodes
// the current source, overlays subtitles, transcodes to H.264/MP3 in an
// FLV container and pushes it to an RTMP endpoint:
//
//	uridecodebin -> subtitleoverlay -> queue -> videoconvert -> videoscale -> x264enc \
//	                                                                                  flvmux -> rtmpsink
//	uridecodebin -> queue -> audioconvert -> audioresample -> lamemp3enc             /
//
// The graph is built once; only the uridecodebin "uri" property changes
// between items.
type GstPipeline struct {
	pipeline *gst.Pipeline
	src      *gst.Element
	messages chan BusMessage
}

const sourceBufferSize = 10 * 1024 * 1024

var _ Driver = (*GstPipeline)(nil)

// NewRTMPPipeline builds the streaming graph targeting the given RTMP
// address and starts pumping its bus. The pipeline is left in the null
// state; the queue controller sets a source and starts it.
func NewRTMPPipeline(rtmpAddress string) (*GstPipeline, error) {
	gst.Init(nil)

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	videoQueue, err := gst.NewElement("queue")
	if err != nil {
		return nil, err
	}
	audioQueue, err := gst.NewElement("queue")
	if err != nil {
		return nil, err
	}
	videoConvert, err := gst.NewElement("videoconvert")
	if err != nil {
		return nil, err
	}
	videoScale, err := gst.NewElement("videoscale")
	if err != nil {
		return nil, err
	}
	audioConvert, err := gst.NewElement("audioconvert")
	if err != nil {
		return nil, err
	}
	audioResample, err := gst.NewElement("audioresample")
	if err != nil {
		return nil, err
	}
	subOverlay, err := gst.NewElement("subtitleoverlay")
	if err != nil {
		return nil, err
	}
	videoEncode, err := gst.NewElementWithProperties("x264enc", map[string]interface{}{
		"pass":      5, // constant quality
		"quantizer": uint(21),
		"bitrate":   uint(3000),
	})
	if err != nil {
		return nil, err
	}
	audioEncode, err := gst.NewElement("lamemp3enc")
	if err != nil {
		return nil, err
	}
	mux, err := gst.NewElementWithProperties("flvmux", map[string]interface{}{
		"streamable": true,
	})
	if err != nil {
		return nil, err
	}
	sink, err := gst.NewElementWithProperties("rtmpsink", map[string]interface{}{
		"location": rtmpAddress,
	})
	if err != nil {
		return nil, err
	}

	if err := pipeline.AddMany(
		subOverlay, videoQueue, videoConvert, videoScale, videoEncode,
		audioQueue, audioConvert, audioResample, audioEncode,
		mux, sink,
	); err != nil {
		return nil, err
	}

	if err := gst.ElementLinkMany(subOverlay, videoQueue, videoConvert, videoScale, videoEncode); err != nil {
		return nil, fmt.Errorf("failed to link video chain: %w", err)
	}
	if err := gst.ElementLinkMany(audioQueue, audioConvert, audioResample, audioEncode); err != nil {
		return nil, fmt.Errorf("failed to link audio chain: %w", err)
	}
	if err := mux.Link(sink); err != nil {
		return nil, fmt.Errorf("failed to link muxer to sink: %w", err)
	}

	muxVideoPad := mux.GetRequestPad("video")
	if muxVideoPad == nil {
		return nil, errors.New("unable to get video pad from flvmux")
	}
	muxAudioPad := mux.GetRequestPad("audio")
	if muxAudioPad == nil {
		return nil, errors.New("unable to get audio pad from flvmux")
	}
	if ret := videoEncode.GetStaticPad("src").Link(muxVideoPad); ret != gst.PadLinkOK {
		return nil, fmt.Errorf("failed to link video encoder to muxer: %s", ret)
	}
	if ret := audioEncode.GetStaticPad("src").Link(muxAudioPad); ret != gst.PadLinkOK {
		return nil, fmt.Errorf("failed to link audio encoder to muxer: %s", ret)
	}

	src, err := gst.NewElementWithName("uridecodebin", "src")
	if err != nil {
		return nil, err
	}
	for name, value := range map[string]interface{}{
		"force-sw-decoders": true,
		"use-buffering":     true,
		"buffer-size":       sourceBufferSize,
	} {
		if err := src.SetProperty(name, value); err != nil {
			return nil, fmt.Errorf("failed to set %s on source: %w", name, err)
		}
	}
	if err := pipeline.Add(src); err != nil {
		return nil, err
	}

	videoSink := subOverlay.GetStaticPad("video_sink")
	subtitleSink := subOverlay.GetStaticPad("subtitle_sink")
	audioSink := audioQueue.GetStaticPad("sink")

	// The decoder exposes pads only once the source is prerolled, so
	// the chains are linked as they appear.
	if _, err := src.Connect("pad-added", func(self *gst.Element, pad *gst.Pad) {
		caps := pad.GetCurrentCaps()
		if caps == nil {
			return
		}
		padType := caps.GetStructureAt(0).Name()
		var target *gst.Pad
		switch {
		case strings.HasPrefix(padType, "video/x-raw"):
			target = videoSink
		case strings.HasPrefix(padType, "audio/x-raw"):
			target = audioSink
		case strings.HasPrefix(padType, "text/x-raw"):
			target = subtitleSink
		default:
			return
		}
		if target.IsLinked() {
			return
		}
		if ret := pad.Link(target); ret != gst.PadLinkOK {
			log.Printf("failed to link decoder %s pad: %s", padType, ret)
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to connect pad-added: %w", err)
	}

	p := &GstPipeline{
		pipeline: pipeline,
		src:      src,
		messages: make(chan BusMessage, 1),
	}
	go p.pumpBus()
	return p, nil
}

// pumpBus forwards end-of-stream and error messages from the pipeline
// bus. It runs for the life of the process.
func (p *GstPipeline) pumpBus() {
	bus := p.pipeline.GetPipelineBus()
	for {
		msg := bus.TimedPop(gst.ClockTimeNone)
		if msg == nil {
			close(p.messages)
			return
		}
		switch msg.Type() {
		case gst.MessageEOS:
			p.messages <- BusMessage{Kind: BusEOS}
		case gst.MessageError:
			p.messages <- BusMessage{Kind: BusError, Err: msg.ParseError()}
		}
	}
}

// Bus returns the pipeline notification stream.
func (p *GstPipeline) Bus() <-chan BusMessage {
	return p.messages
}

// State reports the pipeline's current state.
func (p *GstPipeline) State() State {
	switch p.pipeline.GetCurrentState() {
	case gst.StatePlaying:
		return StatePlaying
	case gst.StatePaused:
		return StatePaused
	case gst.StateReady:
		return StateReady
	default:
		return StateNull
	}
}

// SetSource points the decoder at a new URI.
func (p *GstPipeline) SetSource(uri string) error {
	if err := p.src.SetProperty("uri", uri); err != nil {
		return fmt.Errorf("failed to set source uri: %w", err)
	}
	log.Printf("set source uri to %s", uri)
	return nil
}

// Start brings the pipeline to Playing and returns the active source
// URI. Starting an already-playing pipeline is a no-op success.
func (p *GstPipeline) Start() (string, error) {
	raw, err := p.src.GetProperty("uri")
	if err != nil {
		return "", fmt.Errorf("unable to read source uri: %w", err)
	}
	uri, _ := raw.(string)
	if uri == "" {
		return "", ErrNoSource
	}

	switch p.pipeline.GetCurrentState() {
	case gst.StatePlaying:
		return uri, nil
	case gst.StatePaused:
	default:
		if err := p.pipeline.SetState(gst.StateReady); err != nil {
			return "", fmt.Errorf("failed to ready pipeline: %w", err)
		}
	}
	if err := p.pipeline.SetState(gst.StatePlaying); err != nil {
		return "", fmt.Errorf("failed to start pipeline: %w", err)
	}
	return uri, nil
}

// Stop tears playback down to the null state.
func (p *GstPipeline) Stop() error {
	if p.pipeline.GetCurrentState() == gst.StateNull {
		return nil
	}
	if err := p.pipeline.SetState(gst.StateReady); err != nil {
		return fmt.Errorf("failed to ready pipeline: %w", err)
	}
	if err := p.pipeline.SetState(gst.StateNull); err != nil {
		return fmt.Errorf("failed to stop pipeline: %w", err)
	}
	return nil
}

// Pause suspends a playing pipeline.
func (p *GstPipeline) Pause() error {
	if p.pipeline.GetCurrentState() != gst.StatePlaying {
		return ErrNotPlaying
	}
	if err := p.pipeline.SetState(gst.StatePaused); err != nil {
		return fmt.Errorf("failed to pause pipeline: %w", err)
	}
	return nil
}

// Seek jumps deltaSeconds relative to the current position with a
// flushing seek and returns the new absolute position in seconds. A
// backward seek past the start of the stream lands on zero.
func (p *GstPipeline) Seek(deltaSeconds int64) (uint64, error) {
	if p.pipeline.GetCurrentState() != gst.StatePlaying {
		return 0, ErrNotPlaying
	}
	ok, pos := p.src.QueryPosition(gst.FormatTime)
	if !ok {
		return 0, errors.New("unable to query current position")
	}

	target := pos/int64(time.Second) + deltaSeconds
	if target < 0 {
		target = 0
	}
	log.Printf("seeking from %ds to %ds", pos/int64(time.Second), target)

	if ok := p.src.SeekSimple(gst.FormatTime, gst.SeekFlagFlush, target*int64(time.Second)); !ok {
		return 0, errors.New("seek failed")
	}
	return uint64(target), nil
}
