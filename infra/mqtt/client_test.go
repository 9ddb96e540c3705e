package mqtt

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremqtt "github.com/kilianp07/homeplan/core/mqtt"
	"github.com/kilianp07/homeplan/core/model"
)

// helper to generate self-signed cert
func generateCert(t *testing.T) (certFile, keyFile, caFile string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("gen key: %v", err)
	}
	tmpl := x509.Certificate{SerialNumber: big.NewInt(1), Subject: pkix.Name{CommonName: "test"}, NotBefore: time.Now(), NotAfter: time.Now().Add(time.Hour)}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("create cert: %v", err)
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})

	dir := t.TempDir()
	certFile = dir + "/cert.pem"
	keyFile = dir + "/key.pem"
	caFile = dir + "/ca.pem"
	require.NoError(t, os.WriteFile(certFile, certPEM, 0o644))
	require.NoError(t, os.WriteFile(keyFile, keyPEM, 0o644))
	require.NoError(t, os.WriteFile(caFile, certPEM, 0o644))
	return
}

func withMock(t *testing.T, mc *mockClient) {
	t.Helper()
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() { newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) } })
}

func sampleResult() model.Result {
	res := model.Result{
		Schedule: make([][]string, model.HoursPerDay),
		ConsumedEnergy: model.ConsumedEnergy{
			Value:   1.522,
			Devices: map[string]float64{"aircon": 1.5215},
		},
		Outcomes: []model.Outcome{
			{DeviceID: "aircon", Placed: true, Hours: []int{0}, Cost: 1.5215},
			{DeviceID: "heater", Reason: model.ReasonExceedsMaxPower},
		},
	}
	for h := range res.Schedule {
		res.Schedule[h] = []string{}
	}
	res.Schedule[0] = []string{"aircon"}
	return res
}

func TestLoadTLSConfig(t *testing.T) {
	cert, key, ca := generateCert(t)
	cfg := Config{UseTLS: true, ClientCert: cert, ClientKey: key, CABundle: ca}
	tlsCfg, err := cfg.LoadTLSConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, tlsCfg.Certificates)
	assert.NotNil(t, tlsCfg.RootCAs)

	_, err = Config{UseTLS: true}.LoadTLSConfig()
	assert.Error(t, err)
}

func TestNewClientOptions(t *testing.T) {
	opts, err := NewClientOptions(Config{Broker: "tcp://localhost:1883", ClientID: "id", Username: "u", Password: "p", LWTTopic: "lwt", LWTPayload: "bye"})
	require.NoError(t, err)
	assert.Equal(t, "u", opts.Username)
	assert.Equal(t, "p", opts.Password)
	assert.True(t, opts.WillEnabled)
	assert.Equal(t, "lwt", opts.WillTopic)
	assert.Equal(t, "bye", string(opts.WillPayload))
}

func TestPublishSchedule(t *testing.T) {
	mc := &mockClient{}
	withMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", TopicPrefix: "home/", Retain: true, QoS: map[string]byte{"schedule": 1}})
	require.NoError(t, err)
	pub.now = func() time.Time { return time.UnixMilli(1000) }

	require.NoError(t, pub.PublishSchedule(context.Background(), "run-1", sampleResult()))
	require.Len(t, mc.published, 3)
	assert.Equal(t, "home/device/aircon/schedule", mc.published[0].topic)
	assert.Equal(t, "home/device/heater/schedule", mc.published[1].topic)
	assert.Equal(t, "home/schedule", mc.published[2].topic)
	for _, p := range mc.published {
		assert.Equal(t, byte(1), p.qos)
		assert.True(t, p.retained)
	}

	var dev coremqtt.DeviceMessage
	require.NoError(t, json.Unmarshal(mc.published[1].payload, &dev))
	assert.Equal(t, "run-1", dev.RunID)
	assert.False(t, dev.Placed)
	assert.Equal(t, model.ReasonExceedsMaxPower, dev.Reason)
	assert.Equal(t, []int{}, dev.Hours)
	assert.Equal(t, int64(1000), dev.Timestamp)

	var sum coremqtt.SummaryMessage
	require.NoError(t, json.Unmarshal(mc.published[2].payload, &sum))
	assert.Equal(t, []string{"aircon"}, sum.Schedule[0])
	assert.Equal(t, 1.522, sum.ConsumedEnergy.Value)
}

func TestPublishRetry(t *testing.T) {
	mc := &mockClient{publishErrs: []error{fmt.Errorf("net fail"), nil}}
	withMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1})
	require.NoError(t, err)
	res := sampleResult()
	res.Outcomes = res.Outcomes[:1]
	require.NoError(t, pub.PublishSchedule(context.Background(), "r", res))
	assert.Len(t, mc.published, 3)
}

func TestPublishGivesUp(t *testing.T) {
	fail := fmt.Errorf("net fail")
	mc := &mockClient{publishErrs: []error{fail, fail}}
	withMock(t, mc)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1})
	require.NoError(t, err)
	err = pub.PublishSchedule(context.Background(), "r", sampleResult())
	assert.ErrorIs(t, err, coremqtt.ErrPublish)
	assert.ErrorIs(t, err, fail)
	assert.Len(t, mc.published, 2)
	pub.Disconnect()
}

func TestMockPublisher(t *testing.T) {
	m := NewMockPublisher()
	require.NoError(t, m.PublishSchedule(context.Background(), "a", sampleResult()))
	assert.Contains(t, m.Runs, "a")
	m.Fail = true
	assert.ErrorIs(t, m.PublishSchedule(context.Background(), "b", sampleResult()), coremqtt.ErrPublish)
}

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// mockClient implements paho.Client for tests
type mockClient struct {
	opts        *paho.ClientOptions
	published   []published
	publishErrs []error
}

func (m *mockClient) IsConnected() bool { return true }
func (m *mockClient) Connect() paho.Token {
	if m.opts != nil && m.opts.OnConnect != nil {
		m.opts.OnConnect(m)
	}
	return &dummyToken{}
}
func (m *mockClient) Disconnect(uint) {}
func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	b, _ := payload.([]byte)
	m.published = append(m.published, published{topic, qos, retained, b})
	if len(m.publishErrs) > 0 {
		err := m.publishErrs[0]
		m.publishErrs = m.publishErrs[1:]
		return &dummyToken{err: err}
	}
	return &dummyToken{}
}
func (m *mockClient) Subscribe(string, byte, paho.MessageHandler) paho.Token { return &dummyToken{} }
func (m *mockClient) SubscribeMultiple(map[string]byte, paho.MessageHandler) paho.Token {
	return &dummyToken{}
}
func (m *mockClient) Unsubscribe(...string) paho.Token        { return &dummyToken{} }
func (m *mockClient) AddRoute(string, paho.MessageHandler)    {}
func (m *mockClient) OptionsReader() paho.ClientOptionsReader { return paho.ClientOptionsReader{} }
func (m *mockClient) IsConnectionOpen() bool                  { return true }

type dummyToken struct{ err error }

func (d dummyToken) Wait() bool                     { return true }
func (d dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d dummyToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (d dummyToken) Error() error                   { return d.err }
