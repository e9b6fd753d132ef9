package mqtt

// Writer publishes each written packet as one message.
type Writer struct {
	Queue  *Queue
	Topic  string
	QoS    byte
	Retain bool
}

// NewWriter creates a Writer publishing to topic.
func NewWriter(q *Queue, topic string) *Writer {
	return &Writer{Queue: q, Topic: topic}
}

// Write implements io.Writer, p is published as a whole.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.WritePacket(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WritePacket implements PacketWriter.
func (w *Writer) WritePacket(pkt []byte) error {
	token := w.Queue.PubWith(w.Topic, pkt, w.QoS, w.Retain)
	token.Wait()
	return token.Error()
}
