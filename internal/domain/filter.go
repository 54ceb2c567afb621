package domain

import (
	"fmt"
	"strings"
)

type Country string

const (
	AllCountries   Country = "All Countries"
	CountryUSA     Country = "USA"
	CountryCanada  Country = "Canada"
	CountryUK      Country = "UK"
	CountryGermany Country = "Germany"
	CountryBrazil  Country = "Brazil"
	CountryJapan   Country = "Japan"
)

type Device string

const (
	AllDevices   Device = "All Devices"
	DeviceWeb    Device = "Web"
	DeviceMobile Device = "Mobile"
)

// Countries retorna as opções do seletor de país, incluindo o sentinela
func Countries() []Country {
	return []Country{AllCountries, CountryUSA, CountryCanada, CountryUK, CountryGermany, CountryBrazil, CountryJapan}
}

// Devices retorna as opções do seletor de dispositivo, incluindo o sentinela
func Devices() []Device {
	return []Device{AllDevices, DeviceWeb, DeviceMobile}
}

func ParseCountry(value string) (Country, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return AllCountries, nil
	}
	for _, c := range Countries() {
		if string(c) == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCountry, value)
}

func ParseDevice(value string) (Device, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return AllDevices, nil
	}
	for _, d := range Devices() {
		if string(d) == value {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDevice, value)
}

// FilterState é a projeção de visualização escolhida pelo usuário.
// Nunca altera os dados da série.
type FilterState struct {
	Channel ChannelFilter `json:"channel"`
	Country Country       `json:"country"`
	Device  Device        `json:"device"`
	Horizon Horizon       `json:"horizon"`
}

// DefaultFilterState retorna o estado inicial do dashboard
func DefaultFilterState() FilterState {
	return FilterState{
		Channel: AllChannels(),
		Country: AllCountries,
		Device:  AllDevices,
		Horizon: Day7,
	}
}

// FilterInput são os valores brutos recebidos da camada de apresentação
type FilterInput struct {
	Channel string
	Country string
	Device  string
	Period  string
}

// ParseFilterState valida a entrada; campos vazios usam o valor padrão
func ParseFilterState(in FilterInput) (FilterState, error) {
	state := DefaultFilterState()

	channel, err := ParseChannelFilter(in.Channel)
	if err != nil {
		return FilterState{}, err
	}
	state.Channel = channel

	if state.Country, err = ParseCountry(in.Country); err != nil {
		return FilterState{}, err
	}

	if state.Device, err = ParseDevice(in.Device); err != nil {
		return FilterState{}, err
	}

	if strings.TrimSpace(in.Period) != "" {
		if state.Horizon, err = ParseHorizon(in.Period); err != nil {
			return FilterState{}, err
		}
	}

	return state, nil
}

// SetChannel, SetCountry, SetDevice e SetHorizon são os setters usados pela apresentação
func (f *FilterState) SetChannel(c ChannelFilter) { f.Channel = c }
func (f *FilterState) SetCountry(c Country)       { f.Country = c }
func (f *FilterState) SetDevice(d Device)         { f.Device = d }
func (f *FilterState) SetHorizon(h Horizon)       { f.Horizon = h }
