// Terminal tail for the live event feeds: rating events over the TCP
// sync port, and optionally new-recipe pings over UDP notify.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"
)

type anyEvent map[string]any

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP sync server address")
	notifyAddr := flag.String("notify", "", "UDP notify server address (e.g. 127.0.0.1:7071); empty disables")
	userID := flag.String("user", "sync-client", "user id to register with the notify server")
	pretty := flag.Bool("pretty", true, "pretty print JSON events")
	flag.Parse()

	if *notifyAddr != "" {
		go listenNotify(*notifyAddr, *userID, *pretty)
	}

	for {
		if err := run(*addr, *pretty); err != nil {
			log.Printf("[sync-client] disconnected: %v", err)
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func run(addr string, pretty bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[sync-client] connected to %s", addr)

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		printEvent(sc.Bytes(), pretty)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

// listenNotify registers with the UDP notify server and prints every
// recipe.new ping it sends back.
func listenNotify(addr, userID string, pretty bool) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		log.Printf("[sync-client] notify resolve failed: %v", err)
		return
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		log.Printf("[sync-client] notify dial failed: %v", err)
		return
	}
	defer conn.Close()

	register, _ := json.Marshal(map[string]string{
		"type":    "register",
		"user_id": userID,
	})
	if _, err := conn.Write(register); err != nil {
		log.Printf("[sync-client] notify register failed: %v", err)
		return
	}
	log.Printf("[sync-client] registered with notify server at %s", addr)

	buf := make([]byte, 2048)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			log.Printf("[sync-client] notify read failed: %v", err)
			return
		}
		printEvent(buf[:n], pretty)
	}
}

func printEvent(line []byte, pretty bool) {
	if !pretty {
		fmt.Println(string(line))
		return
	}

	var obj anyEvent
	if err := json.Unmarshal(line, &obj); err != nil {
		// not JSON? print raw
		fmt.Println(string(line))
		return
	}

	b, _ := json.MarshalIndent(obj, "", "  ")
	fmt.Println(string(b))
}
