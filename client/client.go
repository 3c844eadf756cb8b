package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/protocol"
)

// ReportMapper defines operations for our client.
type ReportMapper interface {
	CreateObservation(protocol.CreateObservationRequest) (protocol.Observation, error)
	GetObservation(id string) (protocol.Observation, error)
	ListObservations(paging protocol.PagingRequest, mine bool) (protocol.ObservationResultset, error)
	UpdateObservation(id string, req protocol.UpdateObservationRequest) (protocol.Observation, error)
	DeleteObservation(id string) error
	PublishObservation(id string) (protocol.Observation, error)
	UnpublishObservation(id string) (protocol.Observation, error)
	GetAccessInfo(id string) (protocol.AccessInfo, error)
	CreateImage(fileName string, contentType string, content io.Reader) (protocol.Image, error)
	GetImage(id string) (protocol.Image, error)
	GetImageStream(id string) (io.ReadCloser, error)
	DeleteImage(id string) error
	GetHTTPClient() *http.Client
}

// Client implements ReportMapper.
type Client struct {
	httpClient *http.Client
	url        string
	// Verbose will print extra debug information if true.
	Verbose bool
	Conf    Config
}

// Verify that Client implements ReportMapper.
var _ ReportMapper = (*Client)(nil)

// Config defines the bare minimum that must be statically configured for a
// Client. UserID and Scopes are injected as the gateway identity headers on
// every request; leave them empty for anonymous calls.
type Config struct {
	// Remote is the base url of the service, e.g.
	// https://host:4430/services/report-mapper
	Remote string
	// UserID identifies the calling user.
	UserID string
	// Scopes are the scope strings asserted for the calling user.
	Scopes []string
}

// NewClient instantiates a connection to the server.
func NewClient(conf Config) (*Client, error) {
	if len(conf.Remote) == 0 {
		return nil, errors.New("client requires a remote url")
	}
	c := Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		url:        strings.TrimRight(conf.Remote, "/"),
		Conf:       conf,
	}
	return &c, nil
}

// GetHTTPClient returns the underlying http.Client.
func (c *Client) GetHTTPClient() *http.Client {
	return c.httpClient
}

// CreateObservation creates a draft observation owned by the configured user.
func (c *Client) CreateObservation(req protocol.CreateObservationRequest) (protocol.Observation, error) {
	var observation protocol.Observation
	err := c.doJSON("POST", c.url+"/observations", req, &observation)
	return observation, err
}

// GetObservation fetches one observation by id.
func (c *Client) GetObservation(id string) (protocol.Observation, error) {
	var observation protocol.Observation
	err := c.doJSON("GET", c.url+"/observations/"+id, nil, &observation)
	return observation, err
}

// ListObservations fetches a page of the public listing, or of the caller's
// own observations when mine is true.
func (c *Client) ListObservations(paging protocol.PagingRequest, mine bool) (protocol.ObservationResultset, error) {
	var resultset protocol.ObservationResultset
	values := url.Values{}
	if paging.PageNumber > 0 {
		values.Set("pageNumber", strconv.Itoa(paging.PageNumber))
	}
	if paging.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(paging.PageSize))
	}
	if mine {
		values.Set("mine", "true")
	}
	target := c.url + "/observations"
	if encoded := values.Encode(); len(encoded) > 0 {
		target += "?" + encoded
	}
	err := c.doJSON("GET", target, nil, &resultset)
	return resultset, err
}

// UpdateObservation replaces the editable fields of an observation.
func (c *Client) UpdateObservation(id string, req protocol.UpdateObservationRequest) (protocol.Observation, error) {
	var observation protocol.Observation
	err := c.doJSON("PUT", c.url+"/observations/"+id, req, &observation)
	return observation, err
}

// DeleteObservation removes an observation.
func (c *Client) DeleteObservation(id string) error {
	return c.doJSON("DELETE", c.url+"/observations/"+id, nil, nil)
}

// PublishObservation makes an observation visible to everyone.
func (c *Client) PublishObservation(id string) (protocol.Observation, error) {
	var observation protocol.Observation
	err := c.doJSON("POST", c.url+"/observations/"+id+"/publish", nil, &observation)
	return observation, err
}

// UnpublishObservation reverts an observation to draft visibility.
func (c *Client) UnpublishObservation(id string) (protocol.Observation, error) {
	var observation protocol.Observation
	err := c.doJSON("POST", c.url+"/observations/"+id+"/unpublish", nil, &observation)
	return observation, err
}

// GetAccessInfo reports what the configured user may do with an observation.
func (c *Client) GetAccessInfo(id string) (protocol.AccessInfo, error) {
	var info protocol.AccessInfo
	err := c.doJSON("GET", c.url+"/observations/"+id+"/access", nil, &info)
	return info, err
}

// CreateImage uploads image content as a multipart form and returns the
// stored metadata.
func (c *Client) CreateImage(fileName string, contentType string, content io.Reader) (protocol.Image, error) {
	var image protocol.Image

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return image, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return image, err
	}
	writer.Close()

	req, err := http.NewRequest("POST", c.url+"/images", &body)
	if err != nil {
		return image, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setIdentityHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return image, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return image, err
	}
	return image, json.NewDecoder(resp.Body).Decode(&image)
}

// GetImage fetches image metadata by id.
func (c *Client) GetImage(id string) (protocol.Image, error) {
	var image protocol.Image
	err := c.doJSON("GET", c.url+"/images/"+id, nil, &image)
	return image, err
}

// GetImageStream fetches the image content stream. The caller must close the
// returned reader.
func (c *Client) GetImageStream(id string) (io.ReadCloser, error) {
	req, err := http.NewRequest("GET", c.url+"/images/"+id+"/stream", nil)
	if err != nil {
		return nil, err
	}
	c.setIdentityHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// DeleteImage removes an image and its content.
func (c *Client) DeleteImage(id string) error {
	return c.doJSON("DELETE", c.url+"/images/"+id, nil, nil)
}

// doJSON performs a request with an optional JSON body, decoding a JSON
// response into out when out is non-nil.
func (c *Client) doJSON(method string, target string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonBody)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setIdentityHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) setIdentityHeaders(req *http.Request) {
	if len(c.Conf.UserID) > 0 {
		req.Header.Set("USER_ID", c.Conf.UserID)
	}
	if len(c.Conf.Scopes) > 0 {
		req.Header.Set("USER_SCOPES", strings.Join(c.Conf.Scopes, " "))
	}
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}
