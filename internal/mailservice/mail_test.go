package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	subject := bytes.NewBufferString("Test Subject\n")
	plainBody := bytes.NewBufferString("Test Plain Body")
	htmlBody := bytes.NewBufferString("Test HTML Body")

	testCases := []struct {
		name        string
		parseErr    error
		dialErr     error
		expectedErr bool
	}{
		{name: "sent"},
		{name: "template error", parseErr: errors.New("no template"), expectedErr: true},
		{name: "dial error", dialErr: errors.New("connection refused"), expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockParser := new(MockTemplate)
			mockDialer := new(MockDialer)

			mailer := Mail{
				dialer: mockDialer,
				parser: mockParser,
				sender: "sender@example.com",
			}

			if tc.parseErr != nil {
				mockParser.On("ParseTemplate", "template.html", mock.Anything).Return(nil, nil, nil, tc.parseErr)
			} else {
				mockParser.On("ParseTemplate", "template.html", mock.Anything).Return(subject, plainBody, htmlBody, nil)
				mockDialer.On("DialAndSend", mock.MatchedBy(func(msgs []*mail.Message) bool {
					return len(msgs) == 1 && msgs[0].GetHeader("Subject")[0] == "Test Subject"
				})).Return(tc.dialErr)
			}

			err := mailer.send("test@example.com", welcomeData{Username: "alice"}, "template.html")
			assert.Equal(t, tc.expectedErr, err != nil)

			mockParser.AssertExpectations(t)
			mockDialer.AssertExpectations(t)
		})
	}
}
