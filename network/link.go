package network

import "fmt"

func explorerHost(env Environment, n Network) string {
	switch n {
	case Abstract:
		if env == Mainnet {
			return "https://abscan.org"
		}
		return "https://sepolia.abscan.org"
	}
	return ""
}

func TxLink(env Environment, n Network, hash string) string {
	host := explorerHost(env, n)
	if host == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", host, hash)
}

func TokenLink(env Environment, n Network, token string) string {
	host := explorerHost(env, n)
	if host == "" {
		return ""
	}
	return fmt.Sprintf("%s/token/%s", host, token)
}

func AccountLink(env Environment, n Network, account string) string {
	host := explorerHost(env, n)
	if host == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s", host, account)
}
