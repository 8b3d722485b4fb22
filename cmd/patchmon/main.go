package main

import (
	"context"
	"flag"
	"fmt"
	"reflect"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/patchlink/pkg/env"
	fx "github.com/robotalks/patchlink/pkg/framework"
	"github.com/robotalks/patchlink/pkg/report/mqtt"
	"github.com/robotalks/patchlink/pkg/report/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/patchlink/"
	topic   = "#"
)

func init() {
	if val := env.Getenv("PATCHLINK_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&topic, "topic", topic, "Topic filter, relative to the URL path.")
}

func describe(msg fx.Message) string {
	switch m := msg.(type) {
	case *msgs.PatchOutcome:
		return fmt.Sprintf("Patch (%d,%d) → %s", m.X, m.Y, m.Label)
	case *msgs.RunSummary:
		s := fmt.Sprintf("%s: %d/%d patches, %d classified, %d out of range, %d absent",
			m.Image, m.Completed, m.Total, m.Success, m.OutOfRange, m.Absent)
		if m.Error != "" {
			s += "; stopped: " + m.Error
		}
		return s
	}
	return fmt.Sprintf("[%s] %s",
		reflect.Indirect(reflect.ValueOf(msg)).Type().Name(),
		msg.(msgs.SerializableMessage).Serializable().String())
}

func main() {
	flag.Parse()
	defer glog.Flush()

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		glog.Exitln(err)
	}
	if err := q.Connect(); err != nil {
		glog.Exitln(err)
	}
	defer q.Close()

	q.Sub(topic, func(topic string, payload []byte) {
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			glog.Warningf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			glog.Warningf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
			return
		}
		host := strings.SplitN(topic, "/", 2)[0]
		fmt.Printf("%s: %s\n", host, describe(msg))
	})

	err = fx.NewRunner().HandleSignals().Go(fx.RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})).Wait()
	if err != nil {
		glog.Errorln(err)
	}
}
