package domain

import (
	"fmt"
	"strings"
)

// Channel identifica um canal de marketing
type Channel string

const (
	ChannelPaidMedia            Channel = "Paid Media"
	ChannelGamblingStreamers    Channel = "Gambling Streamers"
	ChannelSportsCappers        Channel = "Sports Cappers"
	ChannelInfluencerAffiliates Channel = "Influencer Affiliates"
	ChannelTrafficAffiliates    Channel = "Traffic Affiliates"
)

// AllChannelsLabel é o rótulo exibido para o filtro sem canal específico
const AllChannelsLabel = "All Channels"

var channelColors = map[Channel]string{
	ChannelPaidMedia:            "#3b82f6",
	ChannelGamblingStreamers:    "#8b5cf6",
	ChannelSportsCappers:        "#10b981",
	ChannelInfluencerAffiliates: "#f59e0b",
	ChannelTrafficAffiliates:    "#ef4444",
}

// Channels retorna os canais na ordem de exibição
func Channels() []Channel {
	return []Channel{
		ChannelPaidMedia,
		ChannelGamblingStreamers,
		ChannelSportsCappers,
		ChannelInfluencerAffiliates,
		ChannelTrafficAffiliates,
	}
}

func (c Channel) String() string {
	return string(c)
}

// Color retorna a cor usada para o canal nos gráficos
func (c Channel) Color() string {
	return channelColors[c]
}

// ShortLabel retorna a primeira palavra do nome do canal (eixo do gráfico de barras)
func (c Channel) ShortLabel() string {
	name := string(c)
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

func (c Channel) IsValid() bool {
	_, ok := channelColors[c]
	return ok
}

// ParseChannel valida o nome de um canal
func ParseChannel(name string) (Channel, error) {
	c := Channel(strings.TrimSpace(name))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
	return c, nil
}

// ChannelFilter representa a seleção de canal: todos os canais ou um canal específico
type ChannelFilter struct {
	channel Channel
	all     bool
}

func AllChannels() ChannelFilter {
	return ChannelFilter{all: true}
}

func SpecificChannel(c Channel) ChannelFilter {
	return ChannelFilter{channel: c}
}

// ParseChannelFilter aceita vazio ou "All Channels" como todos os canais
func ParseChannelFilter(value string) (ChannelFilter, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == AllChannelsLabel {
		return AllChannels(), nil
	}

	c, err := ParseChannel(value)
	if err != nil {
		return ChannelFilter{}, err
	}
	return SpecificChannel(c), nil
}

// IsAll também trata o valor zero como todos os canais
func (f ChannelFilter) IsAll() bool {
	return f.all || f.channel == ""
}

// Channel retorna o canal selecionado, se houver
func (f ChannelFilter) Channel() (Channel, bool) {
	if f.IsAll() {
		return "", false
	}
	return f.channel, true
}

// Includes indica se o canal deve ser exibido com este filtro
func (f ChannelFilter) Includes(c Channel) bool {
	return f.IsAll() || f.channel == c
}

// Visible filtra a lista de canais mantendo a ordem
func (f ChannelFilter) Visible(channels []Channel) []Channel {
	visible := make([]Channel, 0, len(channels))
	for _, c := range channels {
		if f.Includes(c) {
			visible = append(visible, c)
		}
	}
	return visible
}

func (f ChannelFilter) Label() string {
	if f.IsAll() {
		return AllChannelsLabel
	}
	return string(f.channel)
}

func (f ChannelFilter) MarshalText() ([]byte, error) {
	return []byte(f.Label()), nil
}

func (f *ChannelFilter) UnmarshalText(text []byte) error {
	parsed, err := ParseChannelFilter(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
