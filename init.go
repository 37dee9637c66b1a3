package audio

import (
	"fmt"
	"reflect"
)

type Initer interface {
	InitAudio(Params)
}

// Params are fixed for the lifetime of a component.  They are supplied by the
// audio boundary and handed down to every field of a value by Init.
type Params struct {
	SampleRate float64
	Channels   int
	BufferSize int
}

const DefaultBufferSize = 1024

func (p *Params) InitAudio(q Params) { *p = q }

// Frames is the number of samples per second across all channels.
func (p Params) Frames() float64 { return p.SampleRate * float64(p.channels()) }

func (p Params) channels() int {
	if p.Channels < 1 {
		return 1
	}
	return p.Channels
}

func (p Params) bufferSize() int {
	if p.BufferSize < 1 {
		return DefaultBufferSize
	}
	return p.BufferSize
}

func (p Params) normalize() Params {
	p.Channels = p.channels()
	p.BufferSize = p.bufferSize()
	return p
}

// Init calls InitAudio on x, or recursively on the fields of x if x is not an
// Initer.  It panics if p.SampleRate is not positive.
func Init(x interface{}, p Params) {
	if !(p.SampleRate > 0) {
		panic(fmt.Sprintf("audio.Init: invalid sample rate %v", p.SampleRate))
	}
	if err := initVal(reflect.ValueOf(x), p.normalize()); err != nil {
		panic("audio.Init: " + err.Error())
	}
}

var initerType = reflect.TypeOf(new(Initer)).Elem()

func initVal(v reflect.Value, p Params) (err error) {
	if v.Kind() == reflect.Ptr && v.IsNil() || !v.CanInterface() {
		return
	}

	v = reflect.Indirect(v)
	if v.CanAddr() && v.Type().Name() != "" && v.Kind() != reflect.Interface {
		v = v.Addr()
	}
	if x, ok := v.Interface().(Initer); ok {
		x.InitAudio(p)
		return
	}

	defer func() {
		if err != nil {
			// append v to the Init stack trace
			err = fmt.Errorf("%s\n\t%#v", err, v)
		}
	}()
	if t := v.Type(); reflect.PtrTo(t).Implements(initerType) {
		return fmt.Errorf("%s does not implement audio.Initer but *%s does.\nInit stack:", t, t)
	}

	v = reflect.Indirect(v)
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err = initVal(v.Field(i), p); err != nil {
				return
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if err = initVal(v.Index(i), p); err != nil {
				return
			}
		}
	}

	return
}
