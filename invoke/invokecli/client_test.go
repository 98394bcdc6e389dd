package invokecli_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aura-studio/universe/hello"
	"github.com/aura-studio/universe/invoke"
	"github.com/aura-studio/universe/invoke/invokecli"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
)

// engineLambdaClient routes Invoke calls into a local engine through the
// Lambda runtime's JSON codec.
type engineLambdaClient struct {
	handler lambda.Handler

	mu        sync.Mutex
	lastInput *awslambda.InvokeInput
}

func newEngineLambdaClient(e *invoke.Engine) *engineLambdaClient {
	return &engineLambdaClient{handler: lambda.NewHandler(e.Invoke)}
}

func (m *engineLambdaClient) Invoke(ctx context.Context, params *awslambda.InvokeInput,
	optFns ...func(*awslambda.Options)) (*awslambda.InvokeOutput, error) {
	m.mu.Lock()
	m.lastInput = params
	m.mu.Unlock()

	out, err := m.handler.Invoke(ctx, params.Payload)
	if err != nil {
		return &awslambda.InvokeOutput{
			FunctionError: aws.String("Unhandled"),
			Payload:       []byte(`{"errorMessage":"` + err.Error() + `"}`),
		}, nil
	}
	return &awslambda.InvokeOutput{StatusCode: 200, Payload: out}, nil
}

// mockLambdaClient returns canned output.
type mockLambdaClient struct {
	payload       []byte
	functionError *string
	invokeError   error
	delay         time.Duration
}

func (m *mockLambdaClient) Invoke(ctx context.Context, params *awslambda.InvokeInput,
	optFns ...func(*awslambda.Options)) (*awslambda.InvokeOutput, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.invokeError != nil {
		return nil, m.invokeError
	}
	return &awslambda.InvokeOutput{Payload: m.payload, FunctionError: m.functionError}, nil
}

func TestClientCallRoundTrip(t *testing.T) {
	backend := newEngineLambdaClient(invoke.NewEngine())
	client := invokecli.NewClient(
		invokecli.WithLambdaClient(backend),
		invokecli.WithFunctionName("hello-universe"),
		invokecli.WithQualifier("live"),
	)

	res, err := client.Call(context.Background(), hello.Request{"name": "world"})
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if res.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
	if res.Body != "hello universe" {
		t.Errorf("Body = %q, want 'hello universe'", res.Body)
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if aws.ToString(backend.lastInput.FunctionName) != "hello-universe" {
		t.Errorf("FunctionName = %q, want hello-universe", aws.ToString(backend.lastInput.FunctionName))
	}
	if aws.ToString(backend.lastInput.Qualifier) != "live" {
		t.Errorf("Qualifier = %q, want live", aws.ToString(backend.lastInput.Qualifier))
	}
	var sent map[string]any
	if err := json.Unmarshal(backend.lastInput.Payload, &sent); err != nil {
		t.Fatalf("request payload is not JSON: %v", err)
	}
	if sent["name"] != "world" {
		t.Errorf("sent payload = %v", sent)
	}
}

func TestClientCallNilRequest(t *testing.T) {
	client := invokecli.NewClient(
		invokecli.WithLambdaClient(newEngineLambdaClient(invoke.NewEngine())),
		invokecli.WithFunctionName("hello-universe"),
	)

	res, err := client.Call(context.Background(), nil)
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if res.StatusCode != 200 || res.Body != "hello universe" {
		t.Errorf("Result = %+v", res)
	}
}

func TestClientCallStoppedEngineReportsFunctionError(t *testing.T) {
	e := invoke.NewEngine()
	e.Stop()
	client := invokecli.NewClient(
		invokecli.WithLambdaClient(newEngineLambdaClient(e)),
		invokecli.WithFunctionName("hello-universe"),
	)

	if _, err := client.Call(context.Background(), hello.Request{}); err == nil {
		t.Error("expected function error from stopped engine")
	}
}

func TestClientCallWithoutFunctionName(t *testing.T) {
	client := invokecli.NewClient(invokecli.WithLambdaClient(&mockLambdaClient{}))
	if _, err := client.Call(context.Background(), hello.Request{}); !errors.Is(err, invokecli.ErrNoFunction) {
		t.Errorf("err = %v, want ErrNoFunction", err)
	}
}

func TestClientCallTimeout(t *testing.T) {
	client := invokecli.NewClient(
		invokecli.WithLambdaClient(&mockLambdaClient{delay: time.Second}),
		invokecli.WithFunctionName("hello-universe"),
		invokecli.WithDefaultTimeout(20*time.Millisecond),
	)

	if _, err := client.Call(context.Background(), hello.Request{}); !errors.Is(err, invokecli.ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestClientCallInvokeError(t *testing.T) {
	boom := errors.New("boom")
	client := invokecli.NewClient(
		invokecli.WithLambdaClient(&mockLambdaClient{invokeError: boom}),
		invokecli.WithFunctionName("hello-universe"),
	)

	if _, err := client.Call(context.Background(), hello.Request{}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

func TestClientCallMalformedPayload(t *testing.T) {
	for _, payload := range []string{`not json`, `{"statusCode":"200","body":"x"}`, `{"statusCode":200}`} {
		client := invokecli.NewClient(
			invokecli.WithLambdaClient(&mockLambdaClient{payload: []byte(payload)}),
			invokecli.WithFunctionName("hello-universe"),
		)
		if _, err := client.Call(context.Background(), hello.Request{}); !errors.Is(err, invokecli.ErrMalformedBody) {
			t.Errorf("payload %s: err = %v, want ErrMalformedBody", payload, err)
		}
	}
}

func TestClientCallAsync(t *testing.T) {
	client := invokecli.NewClient(
		invokecli.WithLambdaClient(newEngineLambdaClient(invoke.NewEngine())),
		invokecli.WithFunctionName("hello-universe"),
	)

	done := make(chan struct{})
	var (
		res *invokecli.Result
		err error
	)
	client.CallAsync(context.Background(), hello.Request{}, func(r *invokecli.Result, e error) {
		res, err = r, e
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("callback not invoked")
	}
	if err != nil {
		t.Fatalf("CallAsync error: %v", err)
	}
	if res.Body != "hello universe" {
		t.Errorf("Body = %q, want 'hello universe'", res.Body)
	}
}
